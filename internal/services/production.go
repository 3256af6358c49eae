// production.go
//
// Production scheduling and order file service for the metalworking shop floor
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopfloor.
// shopfloor is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopfloor is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopfloor.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// SettingsResult is the API output for production settings
type SettingsResult struct {
	Machines  []string `json:"machines"`
	Operators []string `json:"operators"`
}

// SettingsInput is the request body for settings updates
type SettingsInput struct {
	Machines  types.FlexStringList `json:"machines"`
	Operators types.FlexStringList `json:"operators"`
}

// BlueprintData is a blueprint as it travels on the wire
type BlueprintData struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// TaskInput is the request body for task creation and replacement
type TaskInput struct {
	DayOfWeek       *string                       `json:"dayOfWeek"`
	ScheduledDate   types.FlexTime                `json:"scheduledDate"`
	PartName        *string                       `json:"partName"`
	PlannedQuantity *types.FlexInt                `json:"plannedQuantity"`
	TimePerPart     *types.FlexFloat              `json:"timePerPart"`
	Machine         string                        `json:"machine"`
	Operator        string                        `json:"operator"`
	ActualQuantity  *types.FlexInt                `json:"actualQuantity"`
	Archived        bool                          `json:"archived"`
	ArchivedAt      types.FlexTime                `json:"archivedAt"`
	CompletedAt     types.FlexTime                `json:"completedAt"`
	Blueprints      types.FlexList[BlueprintData] `json:"blueprints"`
}

// TaskResult is the API output for a task
type TaskResult struct {
	ID              string          `json:"id"`
	DayOfWeek       string          `json:"dayOfWeek"`
	ScheduledDate   *string         `json:"scheduledDate"`
	PartName        string          `json:"partName"`
	PlannedQuantity int64           `json:"plannedQuantity"`
	TimePerPart     float64         `json:"timePerPart"`
	Machine         string          `json:"machine"`
	Operator        string          `json:"operator"`
	ActualQuantity  int64           `json:"actualQuantity"`
	Archived        bool            `json:"archived"`
	ArchivedAt      *string         `json:"archivedAt"`
	CompletedAt     *string         `json:"completedAt"`
	Blueprints      []BlueprintData `json:"blueprints,omitempty"`
}

// Validate reports every missing required field
func (in *TaskInput) Validate() error {
	var missing []string
	if in.DayOfWeek == nil || strings.TrimSpace(*in.DayOfWeek) == "" {
		missing = append(missing, "dayOfWeek")
	}
	if in.PartName == nil || strings.TrimSpace(*in.PartName) == "" {
		missing = append(missing, "partName")
	}
	if in.PlannedQuantity == nil {
		missing = append(missing, "plannedQuantity")
	}
	if in.TimePerPart == nil {
		missing = append(missing, "timePerPart")
	}
	if len(missing) > 0 {
		return types.BadRequest("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// apply copies the mutable fields onto task
func (in *TaskInput) apply(task *models.ProductionTask) {
	task.DayOfWeek = *in.DayOfWeek
	task.ScheduledDate = in.ScheduledDate.DatePtr()
	task.PartName = *in.PartName
	task.PlannedQuantity = int64(*in.PlannedQuantity)
	task.TimePerPart = float64(*in.TimePerPart)
	task.Machine = in.Machine
	task.Operator = in.Operator
	task.ActualQuantity = 0
	if in.ActualQuantity != nil {
		task.ActualQuantity = int64(*in.ActualQuantity)
	}
	task.Archived = in.Archived
	task.ArchivedAt = in.ArchivedAt.Ptr()
	task.CompletedAt = in.CompletedAt.Ptr()
}

func (in *TaskInput) blueprints(taskID uint64) []models.ProductionBlueprint {
	out := make([]models.ProductionBlueprint, 0, len(in.Blueprints))
	for _, b := range in.Blueprints {
		out = append(out, models.ProductionBlueprint{
			TaskID:   taskID,
			FileName: b.Name,
			FileURL:  b.URL,
			FileType: b.Type,
		})
	}
	return out
}

// NewTaskResult converts a task model to API output
func NewTaskResult(task models.ProductionTask) TaskResult {
	result := TaskResult{
		ID:              strconv.FormatUint(task.ID, 10),
		DayOfWeek:       task.DayOfWeek,
		ScheduledDate:   types.FormatDate(task.ScheduledDate),
		PartName:        task.PartName,
		PlannedQuantity: task.PlannedQuantity,
		TimePerPart:     task.TimePerPart,
		Machine:         task.Machine,
		Operator:        task.Operator,
		ActualQuantity:  task.ActualQuantity,
		Archived:        task.Archived,
		ArchivedAt:      types.FormatTime(task.ArchivedAt),
		CompletedAt:     types.FormatTime(task.CompletedAt),
	}
	for _, b := range task.Blueprints {
		result.Blueprints = append(result.Blueprints, BlueprintData{
			Name: b.FileName,
			URL:  b.FileURL,
			Type: b.FileType,
		})
	}
	return result
}

// GetSettings returns the machines and operators lists, empty when never saved
func GetSettings(ctx context.Context, db *gorm.DB) (SettingsResult, error) {
	var settings models.ProductionSettings
	err := db.WithContext(ctx).First(&settings, models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SettingsResult{Machines: []string{}, Operators: []string{}}, nil
	}
	if err != nil {
		return SettingsResult{}, err
	}

	return SettingsResult{
		Machines:  settings.Machines.Strings(),
		Operators: settings.Operators.Strings(),
	}, nil
}

// UpdateSettings replaces both lists in one statement
func UpdateSettings(ctx context.Context, db *gorm.DB, input SettingsInput) error {
	settings := models.ProductionSettings{
		ID:        models.SettingsID,
		Machines:  models.NewStringList(input.Machines.Slice()),
		Operators: models.NewStringList(input.Operators.Slice()),
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"machines", "operators", "updated_at"}),
	}).Create(&settings).Error
}

// ListTasks returns the tasks with the given archived flag, ordered by id
func ListTasks(ctx context.Context, db *gorm.DB, archived bool) ([]TaskResult, error) {
	var tasks []models.ProductionTask
	err := db.WithContext(ctx).
		Clauses(hints.CommentBefore("select", "production:list_tasks")).
		Preload("Blueprints", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id")
		}).
		Where("archived = ?", archived).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	results := make([]TaskResult, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, NewTaskResult(task))
	}
	return results, nil
}

// CreateTask inserts a task and its blueprints in one transaction
func CreateTask(ctx context.Context, db *gorm.DB, input TaskInput) (uint64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	var task models.ProductionTask
	input.apply(&task)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&task).Error; err != nil {
			return err
		}

		if blueprints := input.blueprints(task.ID); len(blueprints) > 0 {
			if err := tx.Create(&blueprints).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return task.ID, nil
}

// UpdateTask replaces the mutable fields of task id.
// A supplied blueprints list, even an empty one, replaces all existing blueprints.
func UpdateTask(ctx context.Context, db *gorm.DB, id uint64, input TaskInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task models.ProductionTask
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("Task not found")
		}
		if err != nil {
			return err
		}

		input.apply(&task)
		if err := tx.Omit(clause.Associations).Save(&task).Error; err != nil {
			return err
		}

		if !input.Blueprints.Present() {
			return nil
		}

		if err := tx.Where("task_id = ?", id).Delete(&models.ProductionBlueprint{}).Error; err != nil {
			return err
		}
		if blueprints := input.blueprints(id); len(blueprints) > 0 {
			if err := tx.Create(&blueprints).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
