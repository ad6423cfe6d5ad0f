/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
	IllegalDesc  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	String() string
	Desc() string
	Name() string
}

// Status is the two-state lifecycle shared by leads and tasks.
// The numeric values are what the store persists.
type Status int

const (
	StatusOpen   Status = 1
	StatusClosed Status = 2
)

var _ BaseEnum = StatusOpen

var statusNames = map[Status]string{
	StatusOpen:   "open",
	StatusClosed: "closed",
}

var statusDescs = map[Status]string{
	StatusOpen:   "Open",
	StatusClosed: "Closed",
}

// ParseStatus accepts either the name ("open", "closed") or the stored number.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		if s == name {
			return st, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Status(n).IsValid() {
		return Status(n), nil
	}
	return Status(IllegalValue), fmt.Errorf("invalid status: %q", s)
}

func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) Number() int {
	if !s.IsValid() {
		return IllegalValue
	}
	return int(s)
}

func (s Status) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return IllegalName
}

func (s Status) String() string { return s.Name() }

func (s Status) Desc() string {
	if desc, ok := statusDescs[s]; ok {
		return desc
	}
	return IllegalDesc
}

// IsOpen reports whether s is StatusOpen.
func (s Status) IsOpen() bool { return s == StatusOpen }

// MarshalJSON encodes the status by name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name())
}

// UnmarshalText accepts a name or a number.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalJSON accepts a name or a number.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var parsed Status
	var err error
	switch v := raw.(type) {
	case string:
		parsed, err = ParseStatus(v)
	case float64:
		parsed, err = ParseStatus(strconv.Itoa(int(v)))
	default:
		err = fmt.Errorf("invalid status: %s", string(data))
	}
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusCount partitions a set of records by Status.
type StatusCount struct {
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// Total returns Open + Closed.
func (c StatusCount) Total() int { return c.Open + c.Closed }
