// Copyright 2025 Astrodine Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDish indicates a Dish failed validation.
	ErrInvalidDish = errors.New("invalid dish")

	// ErrInvalidFilter indicates a StructuredFilter failed validation.
	ErrInvalidFilter = errors.New("invalid structured filter")

	// ErrEmptyDishName indicates the dish Name field is empty.
	ErrEmptyDishName = errors.New("dish name cannot be empty")

	// ErrUnknownPlanet indicates a planet outside the closed planet set.
	ErrUnknownPlanet = errors.New("unknown planet")

	// ErrEmptyFilterList indicates a present filter list with no elements.
	ErrEmptyFilterList = errors.New("present filter list cannot be empty")
)
