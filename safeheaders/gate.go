// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package safeheaders

// Gate records which header kinds have already been decided for one response.
//
// A Gate belongs to a single response and must not be shared. The pipeline
// runs the stages of one response sequentially, so no locking is needed.
type Gate struct {
	claimed map[Kind]bool
}

// NewGate returns an empty Gate.
func NewGate() *Gate {
	return &Gate{claimed: map[Kind]bool{}}
}

// TryClaim claims k. It returns true only the first time it is called with k;
// every later call returns false and the caller must leave the header alone.
func (g *Gate) TryClaim(k Kind) bool {
	if g.claimed[k] {
		return false
	}
	g.claimed[k] = true
	return true
}

// Claimed reports whether k was already claimed.
func (g *Gate) Claimed(k Kind) bool {
	return g.claimed[k]
}
