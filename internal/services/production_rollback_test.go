package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/testutil"
	"gorm.io/gorm"
)

var errBlueprintInsert = errors.New("blueprint insert failed")

// failBlueprintInserts makes every insert into production_blueprints fail
func failBlueprintInserts(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_blueprints", func(tx *gorm.DB) {
		if tx.Statement.Table == (models.ProductionBlueprint{}).TableName() {
			_ = tx.AddError(errBlueprintInsert)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}
}

const taskWithBlueprints = `{"dayOfWeek":"Mon","partName":"Bolt","plannedQuantity":100,"timePerPart":2.5,
	"blueprints":[{"name":"bolt.pdf","url":"https://files.example.com/bolt.pdf","type":"application/pdf"}]}`

func TestCreateTaskRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	failBlueprintInserts(t, db)

	_, err := services.CreateTask(context.Background(), db, taskInput(t, taskWithBlueprints))
	if !errors.Is(err, errBlueprintInsert) {
		t.Fatalf("Expected blueprint insert error, got %v", err)
	}

	var tasks, blueprints int64
	db.Model(&models.ProductionTask{}).Count(&tasks)
	db.Model(&models.ProductionBlueprint{}).Count(&blueprints)
	if tasks != 0 || blueprints != 0 {
		t.Errorf("Expected nothing committed, got %d tasks and %d blueprints", tasks, blueprints)
	}
}

func TestUpdateTaskRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	id, err := services.CreateTask(ctx, db, taskInput(t, taskWithBlueprints))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	failBlueprintInserts(t, db)

	update := taskInput(t, `{"dayOfWeek":"Fri","partName":"Nut","plannedQuantity":5,"timePerPart":1,"actualQuantity":5,
		"blueprints":[{"name":"nut.pdf","url":"https://files.example.com/nut.pdf","type":"application/pdf"}]}`)
	if err := services.UpdateTask(ctx, db, id, update); !errors.Is(err, errBlueprintInsert) {
		t.Fatalf("Expected blueprint insert error, got %v", err)
	}

	var task models.ProductionTask
	if err := db.Preload("Blueprints").First(&task, id).Error; err != nil {
		t.Fatalf("Failed to load task: %v", err)
	}
	if task.PartName != "Bolt" || task.DayOfWeek != "Mon" || task.ActualQuantity != 0 {
		t.Errorf("Expected original fields to survive, got %+v", task)
	}
	if len(task.Blueprints) != 1 || task.Blueprints[0].FileName != "bolt.pdf" {
		t.Errorf("Expected original blueprint to survive, got %+v", task.Blueprints)
	}
}
