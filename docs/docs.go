// Package docs registra el OpenAPI del API para /swagger (formato de swag init).
package docs

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
        "/api/cats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "List cats",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/cats.errorResponse"}}
                }
            }
        },
        "/api/cats/add": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Add a cat",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "name": "age_days", "in": "formData", "required": true},
                    {"type": "string", "name": "gender", "in": "formData"},
                    {"type": "string", "name": "sterilized", "in": "formData"},
                    {"type": "string", "name": "primary_breed", "in": "formData"},
                    {"type": "string", "name": "primary_color", "in": "formData"},
                    {"type": "string", "name": "intake_type", "in": "formData"},
                    {"type": "string", "name": "intake_condition", "in": "formData"},
                    {"type": "string", "name": "status", "in": "formData"},
                    {"type": "file", "name": "pictures", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cats.addCatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/cats.errorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/cats.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/cats.errorResponse"}}
                }
            }
        },
        "/api/cats/{catID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Get a cat",
                "parameters": [{"type": "integer", "name": "catID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/cats.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/cats.errorResponse"}}
                }
            }
        },
        "/api/cats/{catID}/delete": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Delete a cat",
                "parameters": [{"type": "integer", "name": "catID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cats.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/cats.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/cats.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/cats.errorResponse"}}
                }
            }
        },
        "/static/uploads/{filename}": {
            "get": {
                "tags": ["images"],
                "summary": "Serve an uploaded picture",
                "parameters": [{"type": "string", "name": "filename", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/cats.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "cats.catResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "age_days": {"type": "integer"},
                "gender": {"type": "string"},
                "sterilized": {"type": "string"},
                "primary_breed": {"type": "string"},
                "primary_color": {"type": "string"},
                "intake_type": {"type": "string"},
                "intake_condition": {"type": "string"},
                "status": {"type": "string"},
                "adoption_chance": {"type": "number"},
                "images": {"type": "array", "items": {"type": "string"}},
                "created_at": {"type": "string"}
            }
        },
        "cats.addCatResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "id": {"type": "integer"},
                "adoption_chance": {"type": "number"}
            }
        },
        "cats.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "cats.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cat Adoption API",
	Description:      "Shelter cats with predicted adoption chance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
