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
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// UserService manages users and their per-user views of leads, tasks and
// clients. The user is always passed explicitly.
type UserService struct {
	Service[model.User]
	leads   *LeadService
	tasks   *TaskService
	clients *ClientService
}

func NewUserService(db bun.IDB) *UserService {
	return &UserService{
		Service: NewServiceWithDB[model.User](db),
		leads:   NewLeadService(db),
		tasks:   NewTaskService(db),
		clients: NewClientService(db),
	}
}

// Tasks lists the tasks assigned to userID.
func (s *UserService) Tasks(ctx context.Context, userID int64) ([]*model.Task, error) {
	return s.tasks.AssignedTo(ctx, userID)
}

// Leads lists the leads assigned to userID.
func (s *UserService) Leads(ctx context.Context, userID int64) ([]*model.Lead, error) {
	return s.leads.AssignedTo(ctx, userID)
}

// Clients lists the clients owned by userID.
func (s *UserService) Clients(ctx context.Context, userID int64) ([]*model.Client, error) {
	return s.clients.OwnedBy(ctx, userID)
}

// TotalOpenAndClosedTasks counts the tasks assigned to userID by status. The
// counts are read with one grouped query at call time; an unknown user yields
// zero counts.
func (s *UserService) TotalOpenAndClosedTasks(ctx context.Context, userID int64) (*types.StatusCount, error) {
	return s.tasks.CountByStatus(ctx, model.AssignedTo(userID))
}

// TotalOpenAndClosedLeads counts the leads assigned to userID by status.
func (s *UserService) TotalOpenAndClosedLeads(ctx context.Context, userID int64) (*types.StatusCount, error) {
	return s.leads.CountByStatus(ctx, model.AssignedTo(userID))
}

// TaskStatistics is TotalOpenAndClosedTasks for an existing user.
func (s *UserService) TaskStatistics(ctx context.Context, userID int64) (*types.StatusCount, error) {
	if _, err := s.Find(ctx, userID); err != nil {
		return nil, err
	}
	return s.TotalOpenAndClosedTasks(ctx, userID)
}

// LeadStatistics is TotalOpenAndClosedLeads for an existing user.
func (s *UserService) LeadStatistics(ctx context.Context, userID int64) (*types.StatusCount, error) {
	if _, err := s.Find(ctx, userID); err != nil {
		return nil, err
	}
	return s.TotalOpenAndClosedLeads(ctx, userID)
}
