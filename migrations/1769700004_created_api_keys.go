package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_api_keys",
			"name": "api_keys",
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
					"id": "text_ak_id",
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
					"id": "relation_ak_user",
					"maxSelect": 1,
					"minSelect": 1,
					"name": "user",
					"presentable": false,
					"required": true,
					"system": false,
					"type": "relation"
				},
				{"hidden": false, "id": "text_ak_name", "max": 0, "min": 0, "name": "name", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": false, "id": "text_ak_desc", "max": 0, "min": 0, "name": "description", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "text_ak_service", "max": 0, "min": 0, "name": "service", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": true, "id": "text_ak_key", "max": 0, "min": 0, "name": "key", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": true, "id": "text_ak_secret", "max": 0, "min": 0, "name": "secret", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "json_ak_scopes", "maxSize": 0, "name": "scopes", "presentable": false, "required": false, "system": false, "type": "json"},
				{"hidden": false, "id": "bool_ak_active", "name": "is_active", "presentable": false, "required": false, "system": false, "type": "bool"},
				{"hidden": false, "id": "date_ak_expires", "max": "", "min": "", "name": "expires", "presentable": false, "required": false, "system": false, "type": "date"},
				{"hidden": false, "id": "number_ak_reqs", "max": null, "min": null, "name": "total_requests", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_ak_tokens", "max": null, "min": null, "name": "total_tokens_used", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_ak_rate", "max": null, "min": null, "name": "success_rate", "onlyInt": false, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "date_ak_lastused", "max": "", "min": "", "name": "last_used_at", "presentable": false, "required": false, "system": false, "type": "date"},
				{"hidden": false, "id": "autodate_ak_created", "name": "created", "onCreate": true, "onUpdate": false, "presentable": false, "system": false, "type": "autodate"},
				{"hidden": false, "id": "autodate_ak_updated", "name": "updated", "onCreate": true, "onUpdate": true, "presentable": false, "system": false, "type": "autodate"}
			],
			"indexes": [
				"CREATE INDEX idx_ak_user ON api_keys (user)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_api_keys")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
