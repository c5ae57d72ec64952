// Package docs registers the OpenAPI document served at /swagger.
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
        "/api/printers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Printers"],
                "summary": "List printers",
                "responses": {"200": {"description": "Printers retrieved successfully", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/printer/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Printers"],
                "summary": "Get printer",
                "parameters": [{"type": "string", "description": "Printer ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Printer retrieved successfully", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Printer not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/printer/save": {
            "post": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Printers"],
                "summary": "Save printer",
                "parameters": [{"description": "Printer", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SavePrinterRequest"}}],
                "responses": {
                    "200": {"description": "Printer saved", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Invalid request or quota exceeded", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "401": {"description": "Missing credentials", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "403": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/printer/delete": {
            "post": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Printers"],
                "summary": "Delete printer",
                "parameters": [{"description": "Printer id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.PrinterIDRequest"}}],
                "responses": {"200": {"description": "Printer deleted", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/printer/test": {
            "post": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Printers"],
                "summary": "Test printer",
                "parameters": [{"description": "Printer id or name", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.PrinterIDRequest"}}],
                "responses": {
                    "200": {"description": "Test page printed", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Printer not found", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Printer offline or transport failure", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/api/printers/discover": {
            "get": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "produces": ["application/json"],
                "tags": ["Discovery"],
                "summary": "Discover printers",
                "responses": {"200": {"description": "Printer scan completed", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/clients": {
            "get": {
                "security": [{"AdminToken": []}],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "List clients",
                "responses": {"200": {"description": "Clients retrieved successfully", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/client/create": {
            "post": {
                "security": [{"AdminToken": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Clients"],
                "summary": "Register client",
                "parameters": [{"description": "Client role", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterClientRequest"}}],
                "responses": {"201": {"description": "Client registered", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/api/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Server info",
                "responses": {"200": {"description": "Server info", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/print": {
            "post": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Print"],
                "summary": "Print text or invoice",
                "parameters": [
                    {"type": "string", "description": "Printer id or name", "name": "x-printer-id", "in": "header"},
                    {"description": "Print payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PrintRequest"}}
                ],
                "responses": {
                    "200": {"description": "Printed", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "500": {"description": "Printer offline or transport failure", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/img": {
            "post": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Print"],
                "summary": "Print image",
                "parameters": [{"description": "Image reference", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ImageRequest"}}],
                "responses": {"200": {"description": "Printed", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/pdftoimg": {
            "post": {
                "security": [{"ClientID": [], "PrintKey": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Print"],
                "summary": "Print document",
                "parameters": [{"description": "Document reference", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.DocumentRequest"}}],
                "responses": {"200": {"description": "Printed", "schema": {"$ref": "#/definitions/utils.APIResponse"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {"200": {"description": "Service is healthy"}, "503": {"description": "Service is unhealthy"}}
            }
        },
        "/ready": {
            "get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Readiness check", "responses": {"200": {"description": "Service is ready"}}}
        },
        "/live": {
            "get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Liveness check", "responses": {"200": {"description": "Service is alive"}}}
        }
    },
    "definitions": {
        "utils.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"$ref": "#/definitions/utils.APIError"},
                "timestamp": {"type": "string"},
                "request_id": {"type": "string"}
            }
        },
        "model.Connection": {
            "type": "object",
            "properties": {
                "ip": {"type": "string"},
                "port": {"type": "integer"}
            }
        },
        "service.SavePrinterRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string", "enum": ["CASHIER", "KITCHEN"]},
                "connection": {"$ref": "#/definitions/model.Connection"},
                "enabled": {"type": "boolean"}
            }
        },
        "service.PrintRequest": {
            "type": "object",
            "properties": {
                "printer_id": {"type": "string"},
                "text": {"type": "string"},
                "company": {"type": "object"},
                "master": {"type": "object"},
                "lines": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.PrinterIDRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "printer_id": {"type": "string"}
            }
        },
        "handler.RegisterClientRequest": {
            "type": "object",
            "properties": {
                "role": {"type": "string"}
            }
        },
        "handler.ImageRequest": {
            "type": "object",
            "required": ["image_path"],
            "properties": {
                "printer_id": {"type": "string"},
                "image_path": {"type": "string"}
            }
        },
        "handler.DocumentRequest": {
            "type": "object",
            "required": ["document_path"],
            "properties": {
                "printer_id": {"type": "string"},
                "document_path": {"type": "string"},
                "convert": {"type": "boolean"}
            }
        }
    },
    "securityDefinitions": {
        "ClientID": {"type": "apiKey", "name": "x-client-id", "in": "header"},
        "PrintKey": {"type": "apiKey", "name": "x-print-key", "in": "header"},
        "AdminToken": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Printer Service API",
	Description:      "Receipt printer registry and print dispatch for POS clients",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
