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
	"fmt"

	"github.com/tomoncle/crm/model"
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// Dashboard summarizes the records of one user.
type Dashboard struct {
	UserID  int64             `json:"user_id"`
	Tasks   types.StatusCount `json:"tasks"`
	Leads   types.StatusCount `json:"leads"`
	Clients int               `json:"clients"`
}

// DashboardService builds per-user and company-wide summaries.
type DashboardService struct {
	users *UserService
}

func NewDashboardService(db bun.IDB) *DashboardService {
	return &DashboardService{users: NewUserService(db)}
}

// ForUser summarizes the tasks, leads and clients of userID.
func (s *DashboardService) ForUser(ctx context.Context, userID int64) (*Dashboard, error) {
	tasks, err := s.users.TaskStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	leads, err := s.users.TotalOpenAndClosedLeads(ctx, userID)
	if err != nil {
		return nil, err
	}
	clients, err := s.users.clients.Count(ctx, model.OwnedBy(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	return &Dashboard{UserID: userID, Tasks: *tasks, Leads: *leads, Clients: clients}, nil
}

// Totals counts all tasks and leads by status regardless of assignee.
func (s *DashboardService) Totals(ctx context.Context) (tasks, leads *types.StatusCount, err error) {
	if tasks, err = s.users.tasks.CountByStatus(ctx, nil); err != nil {
		return nil, nil, err
	}
	if leads, err = s.users.leads.CountByStatus(ctx, nil); err != nil {
		return nil, nil, err
	}
	return tasks, leads, nil
}
