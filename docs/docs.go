// Package docs holds the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/auth/check": {
            "get": {
                "description": "Report whether the session cookie is valid",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Check session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CheckResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.CheckResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Authenticate an admin and set the session cookie",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Admin login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Revoke the current session and clear the cookie. Always succeeds.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Admin logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/donations": {
            "get": {
                "security": [{"CookieAuth": []}],
                "description": "List all donations in submission order",
                "produces": ["application/json"],
                "tags": ["Donations"],
                "summary": "List donations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "post": {
                "description": "Store a donation form submission. id and submittedAt are assigned when absent.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Donations"],
                "summary": "Submit donation",
                "parameters": [
                    {
                        "description": "Donation",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.Donation"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.CreateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "description": "Delete a donation by id",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Donations"],
                "summary": "Delete donation",
                "parameters": [
                    {
                        "description": "Donation id",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.DeleteRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        },
        "/donations/{id}": {
            "delete": {
                "security": [{"CookieAuth": []}],
                "description": "Delete a donation by id",
                "produces": ["application/json"],
                "tags": ["Donations"],
                "summary": "Delete donation",
                "parameters": [
                    {"type": "string", "description": "Donation id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Donation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "donationAmount": {"type": "number"},
                "paymentMethod": {"type": "string", "enum": ["mpesa", "bank"]},
                "confirmationMessage": {"type": "string"},
                "submittedAt": {"type": "string"}
            }
        },
        "handlers.CheckResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "email": {"type": "string"}
            }
        },
        "handlers.CreateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "donation": {"$ref": "#/definitions/domain.Donation"}
            }
        },
        "handlers.DeleteRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}
            }
        },
        "handlers.ListResponse": {
            "type": "object",
            "properties": {
                "donations": {"type": "array", "items": {"$ref": "#/definitions/domain.Donation"}}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "email": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {
            "type": "apiKey",
            "name": "adminToken",
            "in": "cookie"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "donation-desk API",
	Description:      "Donation submissions and admin review.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
