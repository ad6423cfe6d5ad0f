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

// ClientService manages clients. A client with leads or tasks cannot be
// destroyed.
type ClientService struct {
	Service[model.Client]
	leads *LeadService
	tasks *TaskService
}

func NewClientService(db bun.IDB) *ClientService {
	return &ClientService{
		Service: NewServiceWithDB[model.Client](db,
			repository.WithDestroyHook(detachAll(model.SourceClient)),
		),
		leads: NewLeadService(db),
		tasks: NewTaskService(db),
	}
}

// OwnedBy lists the clients owned by userID.
func (s *ClientService) OwnedBy(ctx context.Context, userID int64) ([]*model.Client, error) {
	return s.FilteredBy(ctx, model.OwnedBy(userID))
}

// UpdateAssignee transfers ownership of the client to userID.
func (s *ClientService) UpdateAssignee(ctx context.Context, id, userID int64) error {
	return s.Update(ctx, id, types.Fields{"user_id": userID})
}

// Leads lists the leads of the client, failing when the client is missing.
func (s *ClientService) Leads(ctx context.Context, id int64) ([]*model.Lead, error) {
	if _, err := s.Find(ctx, id); err != nil {
		return nil, err
	}
	return s.leads.ForClient(ctx, id)
}

// Tasks lists the tasks of the client, failing when the client is missing.
func (s *ClientService) Tasks(ctx context.Context, id int64) ([]*model.Task, error) {
	if _, err := s.Find(ctx, id); err != nil {
		return nil, err
	}
	return s.tasks.ForClient(ctx, id)
}
