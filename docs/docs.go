// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

// Package docs registers the console API's Swagger document with swag.
// It is maintained by hand; keep paths in step with internal/api/router.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/globe": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Console"],
                "summary": "Globe scene",
                "description": "Satellite entities, reference frame and tile layer.",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/charts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Console"],
                "summary": "Altitude and velocity charts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/heatmap": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Console"],
                "summary": "Ground-track density heatmap",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Console"],
                "summary": "Current console state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/events": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Console"],
                "summary": "Dispatch a UI event",
                "parameters": [
                    {"in": "body", "name": "event", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Resulting state", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/capture": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Imaging"],
                "summary": "Capture imagery at coordinates",
                "parameters": [
                    {"in": "body", "name": "coordinates", "required": true, "schema": {"$ref": "#/definitions/Coordinates"}}
                ],
                "responses": {
                    "200": {"description": "Captured image", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/classify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Imaging"],
                "summary": "Classify an image",
                "description": "An empty image_url classifies the last capture.",
                "parameters": [
                    {"in": "body", "name": "request", "schema": {"type": "object", "properties": {"image_url": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Classification", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Imaging"],
                "summary": "Upload an image for classification",
                "parameters": [
                    {"in": "formData", "name": "image_file", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "Classification", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Capture history, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/history/classifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Classification history",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/history/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "Delete a history record",
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/ws": {
            "get": {
                "tags": ["Console"],
                "summary": "WebSocket stream of console updates",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Breaker states and connected pages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign in",
                "parameters": [
                    {"in": "body", "name": "form", "required": true, "schema": {"$ref": "#/definitions/LoginForm"}}
                ],
                "responses": {
                    "200": {"description": "Signed in", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign out",
                "responses": {
                    "200": {"description": "Signed out", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create an account",
                "parameters": [
                    {"in": "body", "name": "form", "required": true, "schema": {"$ref": "#/definitions/RegisterForm"}}
                ],
                "responses": {
                    "200": {"description": "Registered", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/auth/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Session status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/auth/password-reset-request": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request a password reset email",
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"type": "object", "properties": {"email": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Requested", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/auth/password-reset/{token}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Set a new password",
                "parameters": [
                    {"in": "path", "name": "token", "type": "string", "required": true},
                    {"in": "body", "name": "form", "required": true, "schema": {"$ref": "#/definitions/ResetForm"}}
                ],
                "responses": {
                    "200": {"description": "Password changed", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"$ref": "#/definitions/APIMeta"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VALIDATION_FAILED"},
                "message": {"type": "string"},
                "details": {}
            }
        },
        "APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "duration_ms": {"type": "integer"},
                "count": {"type": "integer"}
            }
        },
        "Coordinates": {
            "type": "object",
            "required": ["latitude", "longitude"],
            "properties": {
                "latitude": {"type": "number", "minimum": -90, "maximum": 90},
                "longitude": {"type": "number", "minimum": -180, "maximum": 180},
                "dataset": {"type": "string"}
            }
        },
        "LoginForm": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RegisterForm": {
            "type": "object",
            "required": ["username", "email", "password", "confirmPassword"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "confirmPassword": {"type": "string"}
            }
        },
        "ResetForm": {
            "type": "object",
            "required": ["password", "confirmPassword"],
            "properties": {
                "password": {"type": "string", "minLength": 6},
                "confirmPassword": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "CubeSat Console API",
	Description:      "Satellite imagery capture, classification and orbit visualization.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
