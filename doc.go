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

// Package crm implements the record services of a small customer
// relationship manager: users, clients, leads and tasks, with comments and
// activity attached to them, and per-user open/closed statistics.
//
// Services wrap the generic repository package. Each one is bound to a
// *bun.DB (or a transaction) passed to its constructor, or to the global
// connection set up by database.InitDB when none is given:
//
//	db, err := database.InitDB(ctx, cfg)
//	leads := crm.NewLeadService(db)
//	id, err := leads.Create(ctx, &model.Lead{Title: "Acme", UserAssignedID: 1, UserCreatedID: 1})
//	err = leads.Close(ctx, id)
//
// Errors are typed: see types.NotFoundError, types.ValidationError and
// types.ConflictError.
package crm
