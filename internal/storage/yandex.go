// yandex.go
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

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const defaultYandexURL = "https://cloud-api.yandex.net"

// YandexDiskOptions configures YandexDisk
type YandexDiskOptions struct {
	BaseURL string
	Token   string
	Folder  string
	Timeout time.Duration
	Client  *http.Client
}

// YandexDisk stores files on Yandex Disk through its REST API.
// An upload is five calls: create folder, get upload link, put bytes, publish, read metadata.
type YandexDisk struct {
	baseURL string
	token   string
	folder  string
	client  *http.Client
}

// NewYandexDisk creates a YandexDisk store
func NewYandexDisk(opts YandexDiskOptions) *YandexDisk {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultYandexURL
	}
	folder := "/" + strings.Trim(opts.Folder, "/")

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &YandexDisk{
		baseURL: baseURL,
		token:   opts.Token,
		folder:  folder,
		client:  client,
	}
}

// Name implements Store
func (y *YandexDisk) Name() string {
	return "yandex-disk"
}

func (y *YandexDisk) remotePath(name string) string {
	return path.Join(y.folder, name)
}

// Upload implements Store. Once the bytes are on the disk, a failure to publish
// or read back the public link removes the file again.
func (y *YandexDisk) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if y.token == "" {
		return "", ErrNotConfigured
	}
	remote := y.remotePath(name)

	// Folder usually exists already (409), any failure here surfaces on the next call.
	if resp, err := y.do(ctx, http.MethodPut, "/v1/disk/resources", url.Values{"path": {y.folder}}, nil); err == nil {
		drain(resp)
	}

	href, err := y.uploadLink(ctx, remote)
	if err != nil {
		return "", err
	}

	if err := y.put(ctx, href, contentType, data); err != nil {
		return "", err
	}

	publicURL, err := y.publish(ctx, remote)
	if err != nil {
		if derr := y.Delete(context.WithoutCancel(ctx), name); derr != nil {
			log.Printf("Failed to remove unpublished %s: %v", remote, derr)
		}
		return "", err
	}

	return publicURL, nil
}

func (y *YandexDisk) uploadLink(ctx context.Context, remote string) (string, error) {
	resp, err := y.do(ctx, http.MethodGet, "/v1/disk/resources/upload", url.Values{
		"path":      {remote},
		"overwrite": {"true"},
	}, nil)
	if err != nil {
		return "", &UpstreamError{Step: "upload_url", Err: err}
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return "", upstreamError("upload_url", resp)
	}

	var link struct {
		Href string `json:"href"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil || link.Href == "" {
		return "", &UpstreamError{Step: "upload_url", Status: resp.StatusCode, Err: fmt.Errorf("no upload href in response: %v", err)}
	}
	return link.Href, nil
}

func (y *YandexDisk) put(ctx context.Context, href, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, href, bytes.NewReader(data))
	if err != nil {
		return &UpstreamError{Step: "upload", Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return &UpstreamError{Step: "upload", Err: err}
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return upstreamError("upload", resp)
	}
	return nil
}

func (y *YandexDisk) publish(ctx context.Context, remote string) (string, error) {
	resp, err := y.do(ctx, http.MethodPut, "/v1/disk/resources/publish", url.Values{"path": {remote}}, nil)
	if err != nil {
		return "", &UpstreamError{Step: "publish", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer drain(resp)
		return "", upstreamError("publish", resp)
	}
	drain(resp)

	resp, err = y.do(ctx, http.MethodGet, "/v1/disk/resources", url.Values{"path": {remote}}, nil)
	if err != nil {
		return "", &UpstreamError{Step: "metadata", Err: err}
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return "", upstreamError("metadata", resp)
	}

	var meta struct {
		PublicURL string `json:"public_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil || meta.PublicURL == "" {
		return "", &UpstreamError{Step: "metadata", Status: resp.StatusCode, Err: fmt.Errorf("no public_url in response: %v", err)}
	}
	return meta.PublicURL, nil
}

// Delete implements Store
func (y *YandexDisk) Delete(ctx context.Context, name string) error {
	if y.token == "" {
		return ErrNotConfigured
	}
	resp, err := y.do(ctx, http.MethodDelete, "/v1/disk/resources", url.Values{
		"path":        {y.remotePath(name)},
		"permanently": {"true"},
	}, nil)
	if err != nil {
		return &UpstreamError{Step: "delete", Err: err}
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusAccepted, http.StatusNotFound:
		return nil
	}
	return upstreamError("delete", resp)
}

// Ping implements Store
func (y *YandexDisk) Ping(ctx context.Context) error {
	if y.token == "" {
		return ErrNotConfigured
	}
	resp, err := y.do(ctx, http.MethodGet, "/v1/disk/", nil, nil)
	if err != nil {
		return &UpstreamError{Step: "ping", Err: err}
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return upstreamError("ping", resp)
	}
	return nil
}

func (y *YandexDisk) do(ctx context.Context, method, endpoint string, query url.Values, body io.Reader) (*http.Response, error) {
	u := y.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "OAuth "+y.token)
	req.Header.Set("Accept", "application/json")
	return y.client.Do(req)
}

func upstreamError(step string, resp *http.Response) *UpstreamError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return &UpstreamError{Step: step, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	_ = resp.Body.Close()
}
