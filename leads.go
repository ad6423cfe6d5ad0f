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

package crm

import (
	"context"

	"github.com/tomoncle/crm/model"
	"github.com/tomoncle/crm/repository"
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// LeadService manages leads. Destroying a lead removes its comments and
// activity in the same transaction.
type LeadService struct {
	Service[model.Lead]
}

// NewLeadService returns a LeadService bound to db, or to the global
// connection when db is nil.
func NewLeadService(db bun.IDB) *LeadService {
	return &LeadService{
		Service: NewServiceWithDB[model.Lead](db,
			repository.WithImmutableColumns("user_created_id"),
			repository.WithDestroyHook(detachAll(model.SourceLead)),
		),
	}
}

// AssignedTo lists the leads assigned to userID.
func (s *LeadService) AssignedTo(ctx context.Context, userID int64) ([]*model.Lead, error) {
	return s.FilteredBy(ctx, model.AssignedTo(userID))
}

// ForClient lists the leads of clientID.
func (s *LeadService) ForClient(ctx context.Context, clientID int64) ([]*model.Lead, error) {
	return s.FilteredBy(ctx, model.ForClient(clientID))
}

// Close marks the lead closed.
func (s *LeadService) Close(ctx context.Context, id int64) error {
	return s.Update(ctx, id, types.Fields{"status": types.StatusClosed})
}

// Reopen marks the lead open again.
func (s *LeadService) Reopen(ctx context.Context, id int64) error {
	return s.Update(ctx, id, types.Fields{"status": types.StatusOpen})
}

// UpdateAssignee hands the lead over to userID.
func (s *LeadService) UpdateAssignee(ctx context.Context, id, userID int64) error {
	return s.Update(ctx, id, types.Fields{"user_assigned_id": userID})
}

// UpdateFollowup moves the contact date. A zero Date clears it.
func (s *LeadService) UpdateFollowup(ctx context.Context, id int64, contactDate types.Date) error {
	return s.Update(ctx, id, types.Fields{"contact_date": contactDate})
}

// CountByStatus partitions the leads matching predicate into open and closed.
func (s *LeadService) CountByStatus(ctx context.Context, predicate types.Predicate) (*types.StatusCount, error) {
	return countByStatus[model.Lead](ctx, s.Service, predicate)
}
