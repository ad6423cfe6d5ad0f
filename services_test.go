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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/crm/internal/testdb"
	"github.com/tomoncle/crm/model"
	"github.com/tomoncle/crm/types"
	"github.com/uptrace/bun"
)

type world struct {
	ctx         context.Context
	db          *bun.DB
	users       *UserService
	leads       *LeadService
	tasks       *TaskService
	clients     *ClientService
	attachments *Attachments
}

func newWorld(t *testing.T) *world {
	db := testdb.Open(t)
	return &world{
		ctx:         context.Background(),
		db:          db,
		users:       NewUserService(db),
		leads:       NewLeadService(db),
		tasks:       NewTaskService(db),
		clients:     NewClientService(db),
		attachments: NewAttachments(db),
	}
}

func (w *world) user(t *testing.T, name string) int64 {
	t.Helper()
	id, err := w.users.Create(w.ctx, &model.User{Name: name, Email: name + "@example.com"})
	require.NoError(t, err)
	return id
}

func (w *world) client(t *testing.T, name string, owner int64) int64 {
	t.Helper()
	id, err := w.clients.Create(w.ctx, &model.Client{Name: name, UserID: owner})
	require.NoError(t, err)
	return id
}

func TestLeadOpenToClosedStatistics(t *testing.T) {
	w := newWorld(t)
	u1 := w.user(t, "u1")

	l1, err := w.leads.Create(w.ctx, &model.Lead{
		Title:          "L1",
		Status:         types.StatusOpen,
		UserAssignedID: u1,
		UserCreatedID:  u1,
	})
	require.NoError(t, err)

	counts, err := w.users.TotalOpenAndClosedLeads(w.ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCount{Open: 1, Closed: 0}, *counts)

	require.NoError(t, w.leads.Update(w.ctx, l1, types.Fields{"status": types.StatusClosed}))

	counts, err = w.users.TotalOpenAndClosedLeads(w.ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCount{Open: 0, Closed: 1}, *counts)

	require.NoError(t, w.leads.Reopen(w.ctx, l1))
	counts, err = w.users.LeadStatistics(w.ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCount{Open: 1}, *counts)
}

func TestTaskStatisticsMatchAssignedTotal(t *testing.T) {
	w := newWorld(t)
	u1 := w.user(t, "u1")
	u2 := w.user(t, "u2")

	for i, assignee := range []int64{u1, u1, u1, u2} {
		id, err := w.tasks.Create(w.ctx, &model.Task{Title: "T", UserAssignedID: assignee, UserCreatedID: u2})
		require.NoError(t, err)
		if i == 0 {
			require.NoError(t, w.tasks.Close(w.ctx, id))
		}
	}

	counts, err := w.users.TotalOpenAndClosedTasks(w.ctx, u1)
	require.NoError(t, err)
	assigned, err := w.users.Tasks(w.ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, len(assigned), counts.Total())
	assert.Equal(t, types.StatusCount{Open: 2, Closed: 1}, *counts)

	counts, err = w.users.TotalOpenAndClosedTasks(w.ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, counts.Total())

	_, err = w.users.TaskStatistics(w.ctx, 999)
	assert.True(t, types.IsNotFound(err))
}

func TestDuplicateEmailConflicts(t *testing.T) {
	w := newWorld(t)
	w.user(t, "ann")

	_, err := w.users.Create(w.ctx, &model.User{Name: "Ann again", Email: "ann@example.com"})
	assert.True(t, types.IsConflict(err))

	all, err := w.users.FindAll(w.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPerUserViews(t *testing.T) {
	w := newWorld(t)
	ann := w.user(t, "ann")
	bob := w.user(t, "bob")
	acme := w.client(t, "Acme", ann)
	w.client(t, "Globex", bob)

	_, err := w.leads.Create(w.ctx, &model.Lead{Title: "Acme lead", UserAssignedID: bob, UserCreatedID: ann, ClientID: &acme})
	require.NoError(t, err)
	_, err = w.tasks.Create(w.ctx, &model.Task{Title: "Acme task", UserAssignedID: ann, UserCreatedID: ann, ClientID: &acme})
	require.NoError(t, err)

	clients, err := w.users.Clients(w.ctx, ann)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme", clients[0].Name)

	leads, err := w.users.Leads(w.ctx, bob)
	require.NoError(t, err)
	assert.Len(t, leads, 1)

	clientLeads, err := w.clients.Leads(w.ctx, acme)
	require.NoError(t, err)
	assert.Len(t, clientLeads, 1)
	clientTasks, err := w.clients.Tasks(w.ctx, acme)
	require.NoError(t, err)
	assert.Len(t, clientTasks, 1)

	_, err = w.clients.Leads(w.ctx, 404)
	assert.True(t, types.IsNotFound(err))

	require.NoError(t, w.clients.UpdateAssignee(w.ctx, acme, bob))
	clients, err = w.clients.OwnedBy(w.ctx, bob)
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	assert.True(t, types.IsConflict(w.clients.UpdateAssignee(w.ctx, acme, 404)))
	assert.True(t, types.IsConflict(w.clients.Destroy(w.ctx, acme)), "a client with leads cannot be destroyed")
}

func TestLeadAndTaskShortcuts(t *testing.T) {
	w := newWorld(t)
	ann := w.user(t, "ann")
	bob := w.user(t, "bob")

	lead, err := w.leads.Create(w.ctx, &model.Lead{Title: "L", UserAssignedID: ann, UserCreatedID: ann})
	require.NoError(t, err)
	require.NoError(t, w.leads.UpdateAssignee(w.ctx, lead, bob))
	require.NoError(t, w.leads.UpdateFollowup(w.ctx, lead, types.DateOf(2030, time.January, 2)))
	require.NoError(t, w.leads.Close(w.ctx, lead))

	got, err := w.leads.Find(w.ctx, lead)
	require.NoError(t, err)
	assert.Equal(t, bob, got.UserAssignedID)
	assert.Equal(t, "2030-01-02", got.ContactDate.String())
	assert.False(t, got.IsOpen())

	assert.True(t, types.IsValidation(w.leads.Update(w.ctx, lead, types.Fields{"user_created_id": bob})))

	now := time.Now()
	late, err := w.tasks.Create(w.ctx, &model.Task{Title: "late", UserAssignedID: ann, UserCreatedID: ann,
		Deadline: types.NewDate(now.AddDate(0, 0, -3))})
	require.NoError(t, err)
	_, err = w.tasks.Create(w.ctx, &model.Task{Title: "no deadline", UserAssignedID: ann, UserCreatedID: ann})
	require.NoError(t, err)
	soon, err := w.tasks.Create(w.ctx, &model.Task{Title: "soon", UserAssignedID: ann, UserCreatedID: ann})
	require.NoError(t, err)
	require.NoError(t, w.tasks.UpdateDeadline(w.ctx, soon, types.NewDate(now.AddDate(0, 0, 3))))

	overdue, err := w.tasks.Overdue(w.ctx, ann, now)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late, overdue[0].ID)

	require.NoError(t, w.tasks.UpdateAssignee(w.ctx, late, bob))
	overdue, err = w.tasks.Overdue(w.ctx, ann, now)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}

func TestDirectoryServices(t *testing.T) {
	w := newWorld(t)
	roles := NewRoleService(w.db)
	departments := NewDepartmentService(w.db)
	settings := NewSettingService(w.db)

	for _, name := range []string{"owner", "administrator", "employee"} {
		_, err := roles.Create(w.ctx, &model.Role{Name: name})
		require.NoError(t, err)
	}
	list, err := roles.ListAll(w.ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"administrator", "employee", "owner"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = listByName[model.Setting](w.ctx, settings.Service)
	assert.ErrorContains(t, err, "failed to list settings")

	depts, err := departments.ListAll(w.ctx)
	require.NoError(t, err)
	assert.Empty(t, depts)

	_, err = settings.CompanyName(w.ctx)
	assert.True(t, types.IsNotFound(err))

	require.NoError(t, settings.SaveCompany(w.ctx, "Acme", "DK"))
	require.NoError(t, settings.SaveCompany(w.ctx, "Acme ApS", "DK"))
	name, err := settings.CompanyName(w.ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme ApS", name)

	n, err := settings.Count(w.ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDashboard(t *testing.T) {
	w := newWorld(t)
	ann := w.user(t, "ann")
	w.client(t, "Acme", ann)
	_, err := w.tasks.Create(w.ctx, &model.Task{Title: "T", UserAssignedID: ann, UserCreatedID: ann})
	require.NoError(t, err)
	lead, err := w.leads.Create(w.ctx, &model.Lead{Title: "L", UserAssignedID: ann, UserCreatedID: ann})
	require.NoError(t, err)
	require.NoError(t, w.leads.Close(w.ctx, lead))

	dashboards := NewDashboardService(w.db)
	d, err := dashboards.ForUser(w.ctx, ann)
	require.NoError(t, err)
	assert.Equal(t, &Dashboard{
		UserID:  ann,
		Tasks:   types.StatusCount{Open: 1},
		Leads:   types.StatusCount{Closed: 1},
		Clients: 1,
	}, d)

	tasks, leads, err := dashboards.Totals(w.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, tasks.Total())
	assert.Equal(t, 1, leads.Total())

	_, err = dashboards.ForUser(w.ctx, 404)
	assert.True(t, types.IsNotFound(err))
}
