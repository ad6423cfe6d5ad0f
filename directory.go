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

// settingsID is the id of the single company settings row.
const settingsID = 1

type RoleService struct {
	Service[model.Role]
}

func NewRoleService(db bun.IDB) *RoleService {
	return &RoleService{Service: NewServiceWithDB[model.Role](db)}
}

// ListAll returns every role ordered by name.
func (s *RoleService) ListAll(ctx context.Context) ([]*model.Role, error) {
	return listByName[model.Role](ctx, s.Service)
}

type DepartmentService struct {
	Service[model.Department]
}

func NewDepartmentService(db bun.IDB) *DepartmentService {
	return &DepartmentService{Service: NewServiceWithDB[model.Department](db)}
}

// ListAll returns every department ordered by name.
func (s *DepartmentService) ListAll(ctx context.Context) ([]*model.Department, error) {
	return listByName[model.Department](ctx, s.Service)
}

func listByName[T any](ctx context.Context, svc Service[T]) ([]*T, error) {
	repo, err := svc.Repository()
	if err != nil {
		return nil, err
	}
	items := make([]*T, 0)
	if err := repo.DB().NewSelect().Model(&items).Order("name ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", repo.Table().Name, err)
	}
	return items, nil
}

// SettingService reads and writes the company settings row.
type SettingService struct {
	Service[model.Setting]
}

func NewSettingService(db bun.IDB) *SettingService {
	return &SettingService{Service: NewServiceWithDB[model.Setting](db)}
}

// CompanyName returns the configured company name, or a not found error when
// no settings were saved yet.
func (s *SettingService) CompanyName(ctx context.Context) (string, error) {
	settings, err := s.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(settings) == 0 {
		return "", types.NewNotFoundError("Setting", settingsID)
	}
	return settings[0].Company, nil
}

// SaveCompany creates or replaces the settings row.
func (s *SettingService) SaveCompany(ctx context.Context, company, country string) error {
	repo, err := s.Repository()
	if err != nil {
		return err
	}
	setting := &model.Setting{ID: settingsID, Company: company, Country: country}
	return repo.Upsert(ctx, []string{"company", "country"}, []string{"id"}, setting)
}
