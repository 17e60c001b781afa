package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_tokens",
			"name": "tokens",
			"type": "base",
			"system": false,
			"listRule": "user = @request.auth.id",
			"viewRule": "user = @request.auth.id",
			"createRule": "user = @request.auth.id",
			"updateRule": "user = @request.auth.id",
			"deleteRule": "user = @request.auth.id",
			"fields": [
				{
					"autogeneratePattern": "[a-z0-9]{15}",
					"hidden": false,
					"id": "text_tok_id",
					"max": 15,
					"min": 15,
					"name": "id",
					"pattern": "^[a-z0-9]+$",
					"presentable": false,
					"primaryKey": true,
					"required": true,
					"system": true,
					"type": "text"
				},
				{
					"cascadeDelete": true,
					"collectionId": "_pb_users_auth_",
					"hidden": false,
					"id": "relation_tok_user",
					"maxSelect": 1,
					"minSelect": 1,
					"name": "user",
					"presentable": false,
					"required": true,
					"system": false,
					"type": "relation"
				},
				{"hidden": false, "id": "text_tok_provider", "max": 0, "min": 0, "name": "provider", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": false, "id": "text_tok_account", "max": 0, "min": 0, "name": "account", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": true, "id": "text_tok_access", "max": 0, "min": 0, "name": "access_token", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": true, "id": "text_tok_refresh", "max": 0, "min": 0, "name": "refresh_token", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "date_tok_expiry", "max": "", "min": "", "name": "expiry", "presentable": false, "required": false, "system": false, "type": "date"},
				{"hidden": false, "id": "bool_tok_active", "name": "is_active", "presentable": false, "required": false, "system": false, "type": "bool"},
				{"hidden": false, "id": "number_tok_reqs", "max": null, "min": null, "name": "total_requests", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_tok_tokens", "max": null, "min": null, "name": "total_tokens_used", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_tok_rate", "max": null, "min": null, "name": "success_rate", "onlyInt": false, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "date_tok_lastused", "max": "", "min": "", "name": "last_used_at", "presentable": false, "required": false, "system": false, "type": "date"},
				{"hidden": false, "id": "autodate_tok_created", "name": "created", "onCreate": true, "onUpdate": false, "presentable": false, "system": false, "type": "autodate"},
				{"hidden": false, "id": "autodate_tok_updated", "name": "updated", "onCreate": true, "onUpdate": true, "presentable": false, "system": false, "type": "autodate"}
			],
			"indexes": [
				"CREATE INDEX idx_tok_user ON tokens (user)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_tokens")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
