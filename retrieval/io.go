package retrieval

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Question is one row of a batch input file.
type Question struct {
	// RowID is the 1-based position of the question in the input file.
	// It survives difficulty filtering so output rows stay traceable.
	RowID      int
	Text       string
	Difficulty string
}

// Result is one row of a batch output file: the question's row ID and the
// comma-joined, sorted, unique dish identifiers that answer it.
type Result struct {
	RowID  int
	Result string
}

// DebugEntry records what the retriever found for one question before
// identifier mapping, for offline inspection.
type DebugEntry struct {
	RowID       int      `json:"row_id"`
	Question    string   `json:"question"`
	FoundDishes []string `json:"found_dishes"`
}

// NameMapping maps exact dish names to their stable integer identifiers.
type NameMapping map[string]int

// LoadNameMapping reads a JSON object of dish name to identifier.
func LoadNameMapping(path string) (NameMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading name mapping: %w", err)
	}

	var mapping NameMapping
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parsing name mapping: %w", err)
	}
	return mapping, nil
}

// ReadQuestions reads a CSV of questions. The file must carry a "question"
// column; a "difficulty" column is optional. Row IDs are assigned from the
// original file order, starting at 1.
func ReadQuestions(path string) ([]Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening questions file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing questions file: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoQuestions
	}

	questionCol, difficultyCol := -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "question":
			questionCol = i
		case "difficulty":
			difficultyCol = i
		}
	}
	if questionCol < 0 {
		return nil, fmt.Errorf("%w: question", ErrMissingColumn)
	}

	questions := make([]Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if questionCol >= len(row) {
			continue
		}
		q := Question{
			RowID: i + 1,
			Text:  strings.TrimSpace(row[questionCol]),
		}
		if q.Text == "" {
			continue
		}
		if difficultyCol >= 0 && difficultyCol < len(row) {
			q.Difficulty = strings.TrimSpace(row[difficultyCol])
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return questions, nil
}

// WriteResults writes the batch output CSV with a row_id,result header.
func WriteResults(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"row_id", "result"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := writer.Write([]string{strconv.Itoa(r.RowID), r.Result}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDebug writes the per-question debug entries as indented JSON,
// creating the target directory when needed.
func WriteDebug(path string, entries []DebugEntry) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating debug directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
