// Package docs регистрирует описание Shop API для swag и http-swagger.
// Файл соответствует выводу `swag init -g cmd/shop/main.go`.
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
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/signup.Request"}}],
                "responses": {
                    "200": {"description": "Пользователь зарегистрирован", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Некорректный JSON или поля", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Регистрация администраторов отключена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Email уже занят", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}],
                "responses": {
                    "200": {"description": "Токен доступа", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Неверный email или пароль", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/category/add": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Category"],
                "summary": "Создание категории",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/categoryadd.Request"}}],
                "responses": {
                    "200": {"description": "Категория создана", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Категория уже существует", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/category/update": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Category"],
                "summary": "Переименование категории",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/categoryupdate.Request"}}],
                "responses": {
                    "200": {"description": "Категория переименована", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Категория не найдена", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/category/delete": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Category"],
                "summary": "Удаление категории",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/categoryadd.Request"}}],
                "responses": {
                    "200": {"description": "Категория удалена", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "В категории есть товары", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["Category"],
                "summary": "Список категорий",
                "responses": {"200": {"description": "Категории", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/product/add": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Product"],
                "summary": "Создание товара",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/product.Request"}}],
                "responses": {
                    "200": {"description": "Товар создан", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Товар уже есть в категории", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/product/update": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Product"],
                "summary": "Изменение товара",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/product.Request"}}],
                "responses": {
                    "200": {"description": "Товар изменён", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Товар не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/product/delete": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Product"],
                "summary": "Удаление товара",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/productremove.Request"}}],
                "responses": {
                    "200": {"description": "Товар удалён", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "На товар есть заказы", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["Product"],
                "summary": "Список товаров",
                "responses": {"200": {"description": "Товары", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/order/place": {
            "post": {
                "tags": ["Order"],
                "summary": "Оформление заказа",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/place.Request"}}],
                "responses": {
                    "200": {"description": "Заказ оформлен", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Товар не найден", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Недостаточно товара на складе", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/order/accept": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Order"],
                "summary": "Подтверждение заказа",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/accept.Request"}}],
                "responses": {
                    "200": {"description": "Заказ подтверждён", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Заказ не найден или уже подтверждён", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Недостаточно товара на складе", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/orders": {
            "get": {
                "tags": ["Order"],
                "summary": "Список заказов",
                "responses": {"200": {"description": "Заказы", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Проверка готовности",
                "responses": {
                    "200": {"description": "Сервис готов"},
                    "503": {"description": "База данных недоступна", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "error": {"type": "string"}, "data": {}}
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "Error"}, "error": {"type": "string", "example": "invalid request body"}}
        },
        "signup.Request": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "is_admin": {"type": "boolean"}}
        },
        "login.Request": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "categoryadd.Request": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "token": {"type": "string"}}
        },
        "categoryupdate.Request": {
            "type": "object",
            "properties": {"old_name": {"type": "string"}, "new_name": {"type": "string"}, "token": {"type": "string"}}
        },
        "product.Request": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "category_name": {"type": "string"},
                "price": {"type": "number"},
                "stock": {"type": "integer"},
                "token": {"type": "string"}
            }
        },
        "productremove.Request": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "token": {"type": "string"}}
        },
        "place.Request": {
            "type": "object",
            "properties": {"product_name": {"type": "string"}, "quantity": {"type": "integer"}}
        },
        "accept.Request": {
            "type": "object",
            "properties": {"order_id": {"type": "integer"}, "token": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Shop API",
	Description:      "API магазина: пользователи, каталог и заказы",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
