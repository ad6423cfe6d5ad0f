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

package model

import "github.com/tomoncle/crm/types"

// AssignedTo matches leads and tasks assigned to userID.
func AssignedTo(userID int64) types.Predicate {
	return types.Eq("user_assigned_id", userID)
}

// CreatedBy matches leads and tasks created by userID.
func CreatedBy(userID int64) types.Predicate {
	return types.Eq("user_created_id", userID)
}

// OwnedBy matches clients owned by userID.
func OwnedBy(userID int64) types.Predicate {
	return types.Eq("user_id", userID)
}

// ForClient matches leads and tasks of clientID.
func ForClient(clientID int64) types.Predicate {
	return types.Eq("client_id", clientID)
}

// WithStatus matches leads and tasks in status.
func WithStatus(status types.Status) types.Predicate {
	return types.Eq("status", status)
}

// AttachedTo matches the comments or activities of source.
func AttachedTo(source SourceRef) types.Predicate {
	return types.And(
		types.Eq("source_type", source.Type),
		types.Eq("source_id", source.ID),
	)
}
