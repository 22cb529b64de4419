// Package docs registers the OpenAPI document served under /swagger.
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
        "/dishes": {
            "get": {"tags": ["dishes"], "summary": "List dishes", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Dish"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["dishes"], "summary": "Create a dish",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Dish"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["dishes"], "summary": "Delete every dish",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RemovalSummary"}}}}
        },
        "/dishes/{dishId}": {
            "get": {"tags": ["dishes"], "summary": "Get a dish",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["dishes"], "summary": "Update a dish",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Dish"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["dishes"], "summary": "Delete a dish",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}}}}
        },
        "/dishes/{dishId}/comments": {
            "get": {"tags": ["comments"], "summary": "List the comments of a dish",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Comment"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Comment on a dish",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommentRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Remove every comment of a dish",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}}}}
        },
        "/dishes/{dishId}/comments/{commentId}": {
            "get": {"tags": ["comments"], "summary": "Get one comment",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true},
                    {"type": "string", "name": "commentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Comment"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Edit your comment",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true},
                    {"type": "string", "name": "commentId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CommentPatchRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Delete your comment",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true},
                    {"type": "string", "name": "commentId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Dish"}}}}
        },
        "/promotions": {
            "get": {"tags": ["promotions"], "summary": "List promotions", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Promotion"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["promotions"], "summary": "Create a promotion",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Promotion"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Promotion"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["promotions"], "summary": "Delete every promotion",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RemovalSummary"}}}}
        },
        "/promotions/{promoId}": {
            "get": {"tags": ["promotions"], "summary": "Get a promotion",
                "parameters": [{"type": "string", "name": "promoId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Promotion"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["promotions"], "summary": "Update a promotion",
                "parameters": [{"type": "string", "name": "promoId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Promotion"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Promotion"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["promotions"], "summary": "Delete a promotion",
                "parameters": [{"type": "string", "name": "promoId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Promotion"}}}}
        },
        "/leaders": {
            "get": {"tags": ["leaders"], "summary": "List leaders", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Leader"}}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["leaders"], "summary": "Create a leader",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Leader"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Leader"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["leaders"], "summary": "Delete every leader",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RemovalSummary"}}}}
        },
        "/leaders/{leaderId}": {
            "get": {"tags": ["leaders"], "summary": "Get a leader",
                "parameters": [{"type": "string", "name": "leaderId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Leader"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["leaders"], "summary": "Update a leader",
                "parameters": [{"type": "string", "name": "leaderId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Leader"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Leader"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["leaders"], "summary": "Delete a leader",
                "parameters": [{"type": "string", "name": "leaderId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Leader"}}}}
        },
        "/favorites": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Get your favorites",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Favorites"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Add dishes to your favorites",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "array", "items": {"type": "string"}}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Favorites"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Delete your favorites list",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.RemovalSummary"}}}}
        },
        "/favorites/{dishId}": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Add one dish to your favorites",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Favorites"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["favorites"], "summary": "Remove one dish from your favorites",
                "parameters": [{"type": "string", "name": "dishId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Favorites"}}}}
        },
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}}}}
        },
        "/users/signup": {
            "post": {"tags": ["users"], "summary": "Register a new user",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignupRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatusResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/users/login": {
            "post": {"tags": ["users"], "summary": "Log in",
                "parameters": [{"name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/users/logout": {
            "get": {"tags": ["users"], "summary": "Log out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatusResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/users/password": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Change your password",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ChangePasswordRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.StatusResponse"}}}}
        },
        "/users/checkJWTtoken": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Check a bearer token",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TokenCheckResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.TokenCheckResponse"}}}}
        },
        "/imageUpload": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["uploads"], "summary": "Upload a menu image",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "name": "imageFile", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.UploadedFile"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/seed": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["seed"], "summary": "Load a menu document",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.Menu"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.SeedResult"}}}}
        }
    },
    "definitions": {
        "errors.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "string"}}},
        "model.RemovalSummary": {"type": "object", "properties": {"acknowledged": {"type": "boolean"}, "deleted_count": {"type": "integer"}}},
        "model.Comment": {"type": "object", "properties": {"id": {"type": "string"}, "rating": {"type": "integer"}, "comment": {"type": "string"}, "author": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "model.Dish": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}, "image": {"type": "string"}, "category": {"type": "string"}, "label": {"type": "string"}, "price": {"type": "string"}, "featured": {"type": "boolean"}, "comments": {"type": "array", "items": {"$ref": "#/definitions/model.Comment"}}}},
        "model.Promotion": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"}, "label": {"type": "string"}, "price": {"type": "string"}, "description": {"type": "string"}, "featured": {"type": "boolean"}}},
        "model.Leader": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "image": {"type": "string"}, "designation": {"type": "string"}, "abbr": {"type": "string"}, "description": {"type": "string"}, "featured": {"type": "boolean"}}},
        "model.Favorites": {"type": "object", "properties": {"id": {"type": "string"}, "user": {"type": "string"}, "dishes": {"type": "array", "items": {"type": "object"}}, "dish_details": {"type": "array", "items": {"$ref": "#/definitions/model.Dish"}}}},
        "model.User": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "firstname": {"type": "string"}, "lastname": {"type": "string"}, "admin": {"type": "boolean"}}},
        "handler.StatusResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "status": {"type": "string"}}},
        "handler.CommentRequest": {"type": "object", "required": ["comment", "rating"], "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 5}, "comment": {"type": "string"}}},
        "handler.CommentPatchRequest": {"type": "object", "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 5}, "comment": {"type": "string"}}},
        "handler.SignupRequest": {"type": "object", "required": ["password", "username"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "firstname": {"type": "string"}, "lastname": {"type": "string"}}},
        "handler.LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "handler.LoginResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "token": {"type": "string"}, "status": {"type": "string"}}},
        "handler.ChangePasswordRequest": {"type": "object", "required": ["new_password", "old_password"], "properties": {"old_password": {"type": "string"}, "new_password": {"type": "string"}}},
        "handler.TokenCheckResponse": {"type": "object", "properties": {"status": {"type": "string"}, "success": {"type": "boolean"}, "user": {"type": "object"}, "err": {"type": "string"}}},
        "service.UploadedFile": {"type": "object", "properties": {"fieldname": {"type": "string"}, "originalname": {"type": "string"}, "mimetype": {"type": "string"}, "destination": {"type": "string"}, "filename": {"type": "string"}, "path": {"type": "string"}, "size": {"type": "integer"}}},
        "service.Menu": {"type": "object", "properties": {"dishes": {"type": "array", "items": {"$ref": "#/definitions/model.Dish"}}, "promotions": {"type": "array", "items": {"$ref": "#/definitions/model.Promotion"}}, "leaders": {"type": "array", "items": {"$ref": "#/definitions/model.Leader"}}}},
        "service.SeedResult": {"type": "object", "properties": {"dishes": {"type": "integer"}, "promotions": {"type": "integer"}, "leaders": {"type": "integer"}, "skipped": {"type": "integer"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "conFusion Menu API",
	Description:      "Restaurant menu API: dishes with comments, promotions, leaders, per-user favorites and image uploads.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
