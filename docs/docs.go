// Package docs registers the OpenAPI document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/session": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create a session from a verified provider profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "profile",
                        "description": "Provider profile (provider, email, name, avatarUrl)",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "Session token and user"},
                    "400": {"description": "Invalid profile"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "User"},
                    "401": {"description": "No authenticated identity"}
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks owned by or shared with the caller",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Array of tasks"},
                    "500": {"description": "Store error"}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create a task",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created task"},
                    "400": {"description": "Validation error"}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get a task",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Task"},
                    "403": {"description": "Not authorized"},
                    "404": {"description": "Task not found"}
                }
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Update a task (owner only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated task"},
                    "400": {"description": "Invalid patch"},
                    "403": {"description": "Not authorized"},
                    "404": {"description": "Task not found"},
                    "409": {"description": "Concurrent modification"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete a task (owner only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Confirmation message"},
                    "403": {"description": "Not authorized"},
                    "404": {"description": "Task not found"}
                }
            }
        },
        "/tasks/{id}/share": {
            "post": {
                "tags": ["Tasks"],
                "summary": "Share a task with another user (owner only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Updated task"},
                    "400": {"description": "Invalid grantee"},
                    "403": {"description": "Not authorized"},
                    "404": {"description": "Task not found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the session token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskShare API",
	Description:      "Multi-user task tracking with ownership-based sharing",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
