// files.go
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
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/localnerve/shopfloor/internal/models"
	"github.com/localnerve/shopfloor/internal/storage"
	"github.com/localnerve/shopfloor/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DefaultFileType is used when an upload does not name its type
const DefaultFileType = "DOCUMENT"

// fileListLimit caps the unfiltered file listing
const fileListLimit = 100

// FileInput is the request body for a file upload
type FileInput struct {
	OrderID     *types.FlexUint64 `json:"orderId"`
	Filename    string            `json:"filename"`
	FileType    string            `json:"fileType"`
	FileContent string            `json:"fileContent"`
}

// FileResult is the API output for a file. Unlike task ids, file and order ids are JSON numbers.
type FileResult struct {
	ID        uint64 `json:"id"`
	Filename  string `json:"filename"`
	FileURL   string `json:"fileUrl"`
	FileType  string `json:"fileType"`
	OrderID   uint64 `json:"orderId"`
	CreatedAt string `json:"createdAt"`
}

// NewFileResult converts a file model to API output
func NewFileResult(f models.File) FileResult {
	return FileResult{
		ID:        f.ID,
		Filename:  f.Filename,
		FileURL:   f.FileURL,
		FileType:  f.FileType,
		OrderID:   f.OrderID,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Decode validates input and returns the file bytes. It touches neither the database nor the store.
func (in *FileInput) Decode() ([]byte, error) {
	var missing []string
	if in.OrderID == nil || *in.OrderID == 0 {
		missing = append(missing, "orderId")
	}
	if strings.TrimSpace(in.Filename) == "" {
		missing = append(missing, "filename")
	}
	if in.FileContent == "" {
		missing = append(missing, "fileContent")
	}
	if len(missing) > 0 {
		return nil, types.BadRequest("Missing required fields: " + strings.Join(missing, ", "))
	}

	content := in.FileContent
	// data:application/pdf;base64,.... as produced by FileReader.readAsDataURL
	if strings.HasPrefix(content, "data:") {
		if i := strings.Index(content, ","); i >= 0 {
			content = content[i+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
	if err != nil {
		return nil, types.BadRequest("Invalid base64 file content")
	}
	return data, nil
}

// maxFilenameBytes caps the sanitized filename, measured in bytes of UTF-8
const maxFilenameBytes = 200

// SanitizeFilename strips path separators and control bytes and caps the length
// without splitting a multi-byte character
func SanitizeFilename(filename string) string {
	filename = strings.ToValidUTF8(filename, "")
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	filename = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, filename)
	filename = strings.Trim(filename, " .")

	if len(filename) > maxFilenameBytes {
		ext := filepath.Ext(filename)
		if len(ext) > 20 {
			ext = ""
		}
		base := filename[:maxFilenameBytes-len(ext)]
		for !utf8.ValidString(base) {
			base = base[:len(base)-1]
		}
		filename = base + ext
	}

	if filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}

// ObjectName namespaces a filename by order and upload time
func ObjectName(orderID uint64, filename string, now time.Time) string {
	return fmt.Sprintf("%d_%s_%s", orderID, now.UTC().Format("20060102_150405"), SanitizeFilename(filename))
}

// CreateFile uploads the decoded content to store and records it against the order.
// Validation runs before any database or network access. A failed insert removes the uploaded object.
func CreateFile(ctx context.Context, db *gorm.DB, store storage.Store, input FileInput) (FileResult, error) {
	data, err := input.Decode()
	if err != nil {
		return FileResult{}, err
	}
	orderID := input.OrderID.Uint64()

	var order models.Order
	err = db.WithContext(ctx).Select("id").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FileResult{}, types.NotFound("Order not found")
	}
	if err != nil {
		return FileResult{}, err
	}

	fileType := strings.TrimSpace(input.FileType)
	if fileType == "" {
		fileType = DefaultFileType
	}

	file := models.File{
		Filename: input.Filename,
		FileType: fileType,
		OrderID:  orderID,
	}
	name := ObjectName(orderID, input.Filename, time.Now())
	contentType := mime.TypeByExtension(filepath.Ext(name))

	_, err = storage.Upload(ctx, store, name, contentType, data, func(url string) error {
		file.FileURL = url
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// the order may have been removed while the upload was in flight
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return types.NotFound("Order not found")
			}
			return tx.Omit("Order").Create(&file).Error
		})
	})
	if err != nil {
		var ue *storage.UpstreamError
		if errors.As(err, &ue) || errors.Is(err, storage.ErrNotConfigured) {
			return FileResult{}, types.Upstream(err)
		}
		return FileResult{}, err
	}

	return NewFileResult(file), nil
}

// ListFiles returns files of one order, or the latest files overall when orderID is zero. Newest first.
func ListFiles(ctx context.Context, db *gorm.DB, orderID uint64) ([]FileResult, error) {
	query := db.WithContext(ctx).
		Clauses(hints.CommentBefore("select", "files:list")).
		Order("created_at DESC").
		Order("id DESC")
	if orderID != 0 {
		query = query.Where("order_id = ?", orderID)
	} else {
		query = query.Limit(fileListLimit)
	}

	var files []models.File
	if err := query.Find(&files).Error; err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		results = append(results, NewFileResult(f))
	}
	return results, nil
}

// DeleteFile removes the file record. The stored object is left in place.
func DeleteFile(ctx context.Context, db *gorm.DB, id uint64) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.File{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NotFound("File not found")
		}
		return nil
	})
}
