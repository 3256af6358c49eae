// Package api holds the OpenAPI description served at /swagger.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "info@localnerve.com"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/production": {
            "get": {
                "description": "GET settings returns machines and operators. GET tasks returns tasks filtered by archived.",
                "produces": ["application/json"],
                "tags": ["Production"],
                "summary": "Read production settings or tasks",
                "parameters": [
                    {"type": "string", "description": "settings or tasks", "name": "action", "in": "query", "required": true},
                    {"type": "boolean", "description": "Archived filter", "name": "archived", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Production"],
                "summary": "Create a task",
                "parameters": [
                    {"type": "string", "description": "tasks", "name": "action", "in": "query", "required": true},
                    {"description": "Task", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.TaskInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.IDResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Production"],
                "summary": "Replace settings or a task",
                "parameters": [
                    {"type": "string", "description": "settings or tasks", "name": "action", "in": "query", "required": true},
                    {"type": "string", "description": "Task id", "name": "id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Dashboard counters",
                "parameters": [
                    {"type": "string", "description": "Session token", "name": "X-Auth-Token", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.DashboardStats"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/files": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "List order files",
                "parameters": [
                    {"type": "string", "description": "Session token", "name": "X-Auth-Token", "in": "header", "required": true},
                    {"type": "string", "description": "Order id", "name": "orderId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FilesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Upload an order file",
                "parameters": [
                    {"type": "string", "description": "Session token", "name": "X-Auth-Token", "in": "header", "required": true},
                    {"description": "File", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.FileInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/services.FileResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Delete an order file record",
                "parameters": [
                    {"type": "string", "description": "Session token", "name": "X-Auth-Token", "in": "header", "required": true},
                    {"type": "string", "description": "File id", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.MessageResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.IDResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}}
        },
        "handlers.FilesResponse": {
            "type": "object",
            "properties": {"files": {"type": "array", "items": {"$ref": "#/definitions/services.FileResult"}}}
        },
        "services.BlueprintData": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "url": {"type": "string"}, "type": {"type": "string"}}
        },
        "services.TaskInput": {
            "type": "object",
            "properties": {
                "dayOfWeek": {"type": "string"},
                "scheduledDate": {"type": "string", "format": "date"},
                "partName": {"type": "string"},
                "plannedQuantity": {"type": "integer"},
                "timePerPart": {"type": "number"},
                "machine": {"type": "string"},
                "operator": {"type": "string"},
                "actualQuantity": {"type": "integer"},
                "archived": {"type": "boolean"},
                "archivedAt": {"type": "string", "format": "date-time"},
                "completedAt": {"type": "string", "format": "date-time"},
                "blueprints": {"type": "array", "items": {"$ref": "#/definitions/services.BlueprintData"}}
            }
        },
        "services.DashboardStats": {
            "type": "object",
            "properties": {
                "totalOrders": {"type": "integer"},
                "activeOrders": {"type": "integer"},
                "completedOrders": {"type": "integer"},
                "overdueOrders": {"type": "integer"}
            }
        },
        "services.FileInput": {
            "type": "object",
            "properties": {
                "orderId": {"type": "string"},
                "filename": {"type": "string"},
                "fileType": {"type": "string"},
                "fileContent": {"type": "string", "format": "byte"}
            }
        },
        "services.FileResult": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "filename": {"type": "string"},
                "fileUrl": {"type": "string"},
                "fileType": {"type": "string"},
                "orderId": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "utils.ErrorResponseStruct": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "integer"},
                "ok": {"type": "boolean"},
                "timestamp": {"type": "string"},
                "url": {"type": "string"},
                "type": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "utils.SuccessResponseStruct": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "utils.MessageResponseStruct": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Shopfloor API",
	Description:      "Production scheduling and order file service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
