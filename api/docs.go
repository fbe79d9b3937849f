// Package api holds the OpenAPI document of the backend.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "description": "Returns the application health and, if not healthy, an error",
                "produces": ["application/json"],
                "tags": ["General"],
                "summary": "Get health",
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperrors.HTTPError"}}
                }
            }
        },
        "/version": {
            "get": {
                "description": "Returns the software version of the API",
                "tags": ["General"],
                "summary": "API version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.VersionResponse"}}
                }
            }
        },
        "/v1/commands": {
            "get": {
                "description": "Returns the names of all commands",
                "tags": ["Commands"],
                "summary": "List commands",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.CommandListResponse"}}
                }
            }
        },
        "/v1/commands/{name}": {
            "post": {
                "description": "Runs a command. The body is the JSON payload of the command, its fields are lowerCamelCase. Commands without input accept an empty body.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Commands"],
                "summary": "Invoke command",
                "parameters": [
                    {"type": "string", "description": "Name of the command, e.g. create_monthly_budget", "name": "name", "in": "path", "required": true},
                    {"description": "Payload", "name": "payload", "in": "body", "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/router.CommandResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httperrors.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httperrors.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httperrors.HTTPError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httperrors.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "httperrors.HTTPError": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "there is no budget with ID 7"},
                "kind": {"type": "string", "enum": ["not_found", "conflict", "validation", "storage"], "example": "not_found"}
            }
        },
        "router.CommandListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "string"}, "example": ["add_budget_category", "add_category_entry"]}
            }
        },
        "router.CommandResponse": {
            "type": "object",
            "properties": {
                "data": {"description": "Result of the command, null for commands without result"}
            }
        },
        "router.VersionObject": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "1.1.0"}
            }
        },
        "router.VersionResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/router.VersionObject"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
