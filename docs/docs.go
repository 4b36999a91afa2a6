// Package docs registers the swagger document served at /swagger/index.html.
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
        "/api/events": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "state"
                ],
                "summary": "Stream state changes",
                "responses": {}
            }
        },
        "/api/state": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "state"
                ],
                "summary": "Snapshot of the whole application state",
                "responses": {}
            }
        },
        "/api/session/login": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Log in",
                "responses": {}
            }
        },
        "/api/session/register": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Start registration",
                "responses": {}
            }
        },
        "/api/session/risk-answers": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Record questionnaire answers",
                "responses": {}
            }
        },
        "/api/session/register/complete": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Finish registration",
                "responses": {}
            }
        },
        "/api/session/logout": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Log out",
                "responses": {}
            }
        },
        "/api/session/profile": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Get the user card",
                "responses": {}
            },
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Edit the profile",
                "responses": {}
            }
        },
        "/api/session/password": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Change password (simulated)",
                "responses": {}
            }
        },
        "/api/risk/questions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "List risk questions",
                "responses": {}
            }
        },
        "/api/navigation": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "navigation"
                ],
                "summary": "Current screen and menu",
                "responses": {}
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "navigation"
                ],
                "summary": "Change screen",
                "responses": {}
            }
        },
        "/api/subscription": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "subscription"
                ],
                "summary": "Buy a subscription (simulated)",
                "responses": {}
            }
        },
        "/api/subscription/dismiss": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "subscription"
                ],
                "summary": "Close the upgrade prompt",
                "responses": {}
            }
        },
        "/api/dashboard": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Get the dashboard",
                "responses": {}
            }
        },
        "/api/portfolio": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Get the portfolio",
                "responses": {}
            }
        },
        "/api/portfolio/holdings": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Add a holding",
                "responses": {}
            }
        },
        "/api/portfolio/holdings/{index}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Remove a holding",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "index",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {}
            }
        },
        "/api/portfolio/ai-analysis": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Ask the AI to assess the portfolio (premium)",
                "responses": {}
            }
        },
        "/api/market/assets": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "market"
                ],
                "summary": "List assets",
                "responses": {}
            }
        },
        "/api/market/assets/{class}/{code}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "market"
                ],
                "summary": "Get an asset with its fundamentals",
                "parameters": [
                    {
                        "type": "string",
                        "name": "class",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "code",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {}
            }
        },
        "/api/market/assets/{class}/{code}/chart": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "market"
                ],
                "summary": "Get the price, volume and stochastic series of an asset",
                "parameters": [
                    {
                        "type": "string",
                        "name": "class",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "code",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {}
            }
        },
        "/api/news": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "news"
                ],
                "summary": "Get the news screen",
                "responses": {}
            }
        },
        "/api/news/{index}/select": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "news"
                ],
                "summary": "Open a news article",
                "parameters": [
                    {
                        "type": "integer",
                        "name": "index",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {}
            }
        },
        "/api/news/back": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "news"
                ],
                "summary": "Close the open article",
                "responses": {}
            }
        },
        "/api/slots/{slot}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ai"
                ],
                "summary": "Get the display state of an async result slot",
                "parameters": [
                    {
                        "type": "string",
                        "name": "slot",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {}
            }
        },
        "/api/analysis/models": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analysis"
                ],
                "summary": "List the simulated analysis models (premium)",
                "responses": {}
            }
        },
        "/api/analysis/run": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analysis"
                ],
                "summary": "Run a simulated model on an asset (premium)",
                "responses": {}
            }
        },
        "/api/analysis/deep-dive": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analysis"
                ],
                "summary": "Ask the AI for a follow-up on a model run (premium)",
                "responses": {}
            }
        },
        "/api/ai/chat": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ai"
                ],
                "summary": "Get the AskAI conversation (premium)",
                "responses": {}
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ai"
                ],
                "summary": "Ask the AI a question (premium)",
                "responses": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "investdash API",
	Description:      "Personal finance dashboard: portfolio ledger, risk profile, premium AI analysis.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
