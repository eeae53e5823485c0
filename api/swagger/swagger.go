package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Scheduling Assistant API",
        "description": "Conversational scheduling assistant backed by a completion oracle",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Assistant", "description": "Conversational scheduling endpoint"},
        {"name": "Timetables", "description": "Stored timetable reads and exports"},
        {"name": "Conflicts", "description": "Pending conflict confirmations"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/chat": {
            "post": {
                "tags": ["Assistant"],
                "summary": "Converse with the scheduling assistant",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ChatReply"}},
                    "400": {"description": "Missing user ID"},
                    "500": {"description": "Downstream failure"}
                }
            }
        },
        "/api/v1/timetables/{userId}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get a user's full timetable",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/{userId}/dates/{date}": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Get one date bucket",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetables/{userId}/export": {
            "get": {
                "tags": ["Timetables"],
                "summary": "Export a user's timetable",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        },
        "/api/v1/conflicts/{userId}": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Inspect a pending conflict confirmation",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Nothing pending"}
                }
            },
            "delete": {
                "tags": ["Conflicts"],
                "summary": "Cancel a pending conflict confirmation",
                "parameters": [
                    {"name": "userId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "ChatRequest": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["user_id"]
        },
        "ChatReply": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "updates": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                }
            }
        },
        "TimetableEntry": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "subject": {"type": "string"},
                "time": {"type": "string"},
                "duration": {"type": "string"}
            }
        },
        "PendingConflict": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "message": {"type": "string"},
                "created_at": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
