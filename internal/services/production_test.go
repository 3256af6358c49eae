package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/testutil"
	"github.com/localnerve/shopfloor/internal/types"
)

func taskInput(t *testing.T, body string) services.TaskInput {
	t.Helper()
	var in services.TaskInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("Failed to decode task input: %v", err)
	}
	return in
}

func TestSettingsRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	empty, err := services.GetSettings(ctx, db)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if empty.Machines == nil || len(empty.Machines) != 0 || len(empty.Operators) != 0 {
		t.Errorf("Expected empty lists before first save, got %+v", empty)
	}

	var input services.SettingsInput
	if err := json.Unmarshal([]byte(`{"machines":["M1","M2",3],"operators":["Ann"]}`), &input); err != nil {
		t.Fatal(err)
	}
	if err := services.UpdateSettings(ctx, db, input); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	// second write replaces, it does not append
	if err := json.Unmarshal([]byte(`{"machines":["M1","M2","3"],"operators":["Ann","Bob"]}`), &input); err != nil {
		t.Fatal(err)
	}
	if err := services.UpdateSettings(ctx, db, input); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}

	got, err := services.GetSettings(ctx, db)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if len(got.Machines) != 3 || got.Machines[2] != "3" {
		t.Errorf("Unexpected machines %v", got.Machines)
	}
	if len(got.Operators) != 2 || got.Operators[1] != "Bob" {
		t.Errorf("Unexpected operators %v", got.Operators)
	}

	var count int64
	db.Model(&models.ProductionSettings{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected a single settings row, got %d", count)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	id, err := services.CreateTask(ctx, db, taskInput(t, `{"dayOfWeek":"Mon","partName":"Bolt","plannedQuantity":100,"timePerPart":2.5,"machine":"M1","operator":"Ann"}`))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := services.ListTasks(ctx, db, false)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}

	task := tasks[0]
	if task.ID == "" || task.ID != strconv.FormatUint(id, 10) {
		t.Errorf("Expected id %d, got %s", id, task.ID)
	}
	if task.PartName != "Bolt" || task.DayOfWeek != "Mon" || task.PlannedQuantity != 100 || task.TimePerPart != 2.5 {
		t.Errorf("Unexpected task %+v", task)
	}
	if task.Machine != "M1" || task.Operator != "Ann" {
		t.Errorf("Unexpected assignment %+v", task)
	}
	if task.ActualQuantity != 0 || task.Archived {
		t.Errorf("Expected actualQuantity 0 and archived false, got %+v", task)
	}
	if task.ScheduledDate != nil || task.ArchivedAt != nil || task.CompletedAt != nil {
		t.Errorf("Expected unset dates, got %+v", task)
	}
	if task.Blueprints != nil {
		t.Errorf("Expected no blueprints, got %v", task.Blueprints)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := services.CreateTask(context.Background(), db, taskInput(t, `{"partName":"Bolt"}`))
	ce, ok := types.AsCustomError(err)
	if !ok || ce.Code != http.StatusBadRequest {
		t.Fatalf("Expected bad request, got %v", err)
	}

	var count int64
	db.Model(&models.ProductionTask{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no task rows, got %d", count)
	}
}

func TestCreateTaskWithBlueprintsAndDates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := services.CreateTask(ctx, db, taskInput(t, `{
		"dayOfWeek":"Tue","scheduledDate":"2024-03-05","partName":"Flange",
		"plannedQuantity":"40","timePerPart":"1.25","actualQuantity":12,
		"blueprints":[{"name":"flange.pdf","url":"https://files/flange.pdf","type":"application/pdf"},
		              {"name":"flange.dxf","url":"https://files/flange.dxf","type":"image/vnd.dxf"}]
	}`))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, _ := services.ListTasks(ctx, db, false)
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.ScheduledDate == nil || *task.ScheduledDate != "2024-03-05" {
		t.Errorf("Expected scheduled date 2024-03-05, got %v", task.ScheduledDate)
	}
	if task.PlannedQuantity != 40 || task.TimePerPart != 1.25 || task.ActualQuantity != 12 {
		t.Errorf("Unexpected quantities %+v", task)
	}
	if len(task.Blueprints) != 2 || task.Blueprints[0].Name != "flange.pdf" || task.Blueprints[1].Type != "image/vnd.dxf" {
		t.Errorf("Unexpected blueprints %+v", task.Blueprints)
	}
}

func TestCreateTaskScheduledDateWithOffset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := services.CreateTask(ctx, db, taskInput(t, `{
		"dayOfWeek":"Sun","scheduledDate":"2024-03-10T01:00:00+03:00","partName":"Shaft",
		"plannedQuantity":10,"timePerPart":1
	}`))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, _ := services.ListTasks(ctx, db, false)
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	if got := tasks[0].ScheduledDate; got == nil || *got != "2024-03-10" {
		t.Errorf("Expected scheduled date 2024-03-10, got %v", got)
	}
}

func TestUpdateTaskReplacesBlueprints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	id, err := services.CreateTask(ctx, db, taskInput(t, `{"dayOfWeek":"Mon","partName":"Bolt","plannedQuantity":100,"timePerPart":2.5,
		"blueprints":[{"name":"a.pdf","url":"u1","type":"pdf"},{"name":"b.pdf","url":"u2","type":"pdf"}]}`))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	err = services.UpdateTask(ctx, db, id, taskInput(t, `{"dayOfWeek":"Wed","partName":"Bolt M8","plannedQuantity":120,"timePerPart":2,
		"actualQuantity":60,"blueprints":[{"name":"c.pdf","url":"u3","type":"pdf"}]}`))
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	tasks, _ := services.ListTasks(ctx, db, false)
	if len(tasks) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.DayOfWeek != "Wed" || task.PartName != "Bolt M8" || task.ActualQuantity != 60 {
		t.Errorf("Expected fields replaced, got %+v", task)
	}
	if len(task.Blueprints) != 1 || task.Blueprints[0].Name != "c.pdf" {
		t.Errorf("Expected blueprints replaced, got %+v", task.Blueprints)
	}

	// omitted list keeps blueprints
	if err := services.UpdateTask(ctx, db, id, taskInput(t, `{"dayOfWeek":"Wed","partName":"Bolt M8","plannedQuantity":120,"timePerPart":2}`)); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	tasks, _ = services.ListTasks(ctx, db, false)
	if len(tasks[0].Blueprints) != 1 {
		t.Errorf("Expected blueprints kept when list omitted, got %+v", tasks[0].Blueprints)
	}

	// empty list clears them
	if err := services.UpdateTask(ctx, db, id, taskInput(t, `{"dayOfWeek":"Wed","partName":"Bolt M8","plannedQuantity":120,"timePerPart":2,"blueprints":[]}`)); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	var count int64
	db.Model(&models.ProductionBlueprint{}).Where("task_id = ?", id).Count(&count)
	if count != 0 {
		t.Errorf("Expected blueprints cleared, got %d", count)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	err := services.UpdateTask(context.Background(), db, 999, taskInput(t, `{"dayOfWeek":"Mon","partName":"Bolt","plannedQuantity":1,"timePerPart":1}`))
	ce, ok := types.AsCustomError(err)
	if !ok || ce.Code != http.StatusNotFound {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestListTasksArchivedFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	for _, body := range []string{
		`{"dayOfWeek":"Mon","partName":"A","plannedQuantity":1,"timePerPart":1}`,
		`{"dayOfWeek":"Mon","partName":"B","plannedQuantity":1,"timePerPart":1,"archived":true,"archivedAt":"2024-03-01T10:00:00Z"}`,
		`{"dayOfWeek":"Mon","partName":"C","plannedQuantity":1,"timePerPart":1}`,
	} {
		if _, err := services.CreateTask(ctx, db, taskInput(t, body)); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}

	active, _ := services.ListTasks(ctx, db, false)
	archived, _ := services.ListTasks(ctx, db, true)

	if len(active) != 2 || len(archived) != 1 {
		t.Fatalf("Expected 2 active and 1 archived, got %d and %d", len(active), len(archived))
	}
	for _, task := range active {
		if task.Archived {
			t.Errorf("Archived task %s in active list", task.ID)
		}
	}
	if !archived[0].Archived || archived[0].PartName != "B" {
		t.Errorf("Unexpected archived task %+v", archived[0])
	}
	if archived[0].ArchivedAt == nil || *archived[0].ArchivedAt != "2024-03-01T10:00:00Z" {
		t.Errorf("Unexpected archivedAt %v", archived[0].ArchivedAt)
	}
	if active[0].PartName != "A" || active[1].PartName != "C" {
		t.Error("Expected tasks ordered by id")
	}
}
