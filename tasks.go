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
	"time"

	"github.com/tomoncle/crm/model"
	"github.com/tomoncle/crm/repository"
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

// TaskService manages tasks.
type TaskService struct {
	Service[model.Task]
}

func NewTaskService(db bun.IDB) *TaskService {
	return &TaskService{
		Service: NewServiceWithDB[model.Task](db,
			repository.WithImmutableColumns("user_created_id"),
			repository.WithDestroyHook(detachAll(model.SourceTask)),
		),
	}
}

// AssignedTo lists the tasks assigned to userID.
func (s *TaskService) AssignedTo(ctx context.Context, userID int64) ([]*model.Task, error) {
	return s.FilteredBy(ctx, model.AssignedTo(userID))
}

// ForClient lists the tasks of clientID.
func (s *TaskService) ForClient(ctx context.Context, clientID int64) ([]*model.Task, error) {
	return s.FilteredBy(ctx, model.ForClient(clientID))
}

// Overdue lists the open tasks of userID whose deadline lies before now's day.
func (s *TaskService) Overdue(ctx context.Context, userID int64, now time.Time) ([]*model.Task, error) {
	tasks, err := s.FilteredBy(ctx, types.And(
		model.AssignedTo(userID),
		model.WithStatus(types.StatusOpen),
		types.NotNull("deadline"),
	))
	if err != nil {
		return nil, err
	}
	overdue := make([]*model.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.IsOverdue(now) {
			overdue = append(overdue, task)
		}
	}
	return overdue, nil
}

func (s *TaskService) Close(ctx context.Context, id int64) error {
	return s.Update(ctx, id, types.Fields{"status": types.StatusClosed})
}

func (s *TaskService) Reopen(ctx context.Context, id int64) error {
	return s.Update(ctx, id, types.Fields{"status": types.StatusOpen})
}

// UpdateAssignee hands the task over to userID.
func (s *TaskService) UpdateAssignee(ctx context.Context, id, userID int64) error {
	return s.Update(ctx, id, types.Fields{"user_assigned_id": userID})
}

// UpdateDeadline moves the deadline. A zero Date clears it.
func (s *TaskService) UpdateDeadline(ctx context.Context, id int64, deadline types.Date) error {
	return s.Update(ctx, id, types.Fields{"deadline": deadline})
}

// CountByStatus partitions the tasks matching predicate into open and closed.
func (s *TaskService) CountByStatus(ctx context.Context, predicate types.Predicate) (*types.StatusCount, error) {
	return countByStatus[model.Task](ctx, s.Service, predicate)
}
