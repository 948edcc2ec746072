// Package docs registers the satscan OpenAPI description with swag. The
// handler annotations live in internal/httpapi; regenerate with
// `swag init -g cmd/satscan/docs.go -o docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/status": {
            "get": {
                "produces": ["application/json"],
                "summary": "Scene status",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}}
            }
        },
        "/subscribers": {
            "get": {
                "produces": ["application/json"],
                "summary": "Subscriptions per event kind",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SubscribersResponse"}}}
            }
        },
        "/input": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Set the army movement vector",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.InputRequest"}}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/input/reset": {
            "post": {
                "summary": "Return the army to its spawn point",
                "responses": {
                    "204": {"description": "No Content"},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/scene/reload": {
            "post": {
                "produces": ["application/json"],
                "summary": "Reload the current scene (runs the registry purge)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ReloadResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.Vec3": {
            "type": "object",
            "properties": {"x": {"type": "number"}, "y": {"type": "number"}, "z": {"type": "number"}}
        },
        "types.InputRequest": {
            "type": "object",
            "properties": {"x": {"type": "number", "example": 1}, "y": {"type": "number", "example": 0}}
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}
        },
        "types.ReloadResponse": {
            "type": "object",
            "properties": {"scene": {"type": "string"}, "purged": {"type": "integer"}}
        },
        "types.SubscribersResponse": {
            "type": "object",
            "properties": {"kinds": {"type": "object", "additionalProperties": {"type": "integer"}}}
        },
        "types.SatelliteStatus": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "position": {"$ref": "#/definitions/types.Vec3"},
                "direction": {"type": "string"},
                "state": {"type": "string"},
                "flips": {"type": "integer"},
                "detections": {"type": "integer"},
                "visible": {"type": "boolean"}
            }
        },
        "types.ScoutStatus": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "position": {"$ref": "#/definitions/types.Vec3"},
                "target": {"$ref": "#/definitions/types.Vec3"},
                "received": {"type": "integer"}
            }
        },
        "types.ArmyStatus": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "position": {"$ref": "#/definitions/types.Vec3"},
                "movement": {"type": "array", "items": {"type": "number"}}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "scene": {"type": "string"},
                "ticks": {"type": "integer"},
                "transitions": {"type": "integer"},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"},
                "satellite": {"$ref": "#/definitions/types.SatelliteStatus"},
                "scouts": {"type": "array", "items": {"$ref": "#/definitions/types.ScoutStatus"}},
                "army": {"$ref": "#/definitions/types.ArmyStatus"},
                "last_error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "satscan API",
	Description:      "Control surface for the satscan scene simulation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
