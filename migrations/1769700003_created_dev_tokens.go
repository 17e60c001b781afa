package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_dev_tokens",
			"name": "dev_tokens",
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
					"id": "text_dt_id",
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
					"id": "relation_dt_user",
					"maxSelect": 1,
					"minSelect": 1,
					"name": "user",
					"presentable": false,
					"required": true,
					"system": false,
					"type": "relation"
				},
				{"hidden": true, "id": "text_dt_token", "max": 0, "min": 0, "name": "token", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": false, "id": "text_dt_name", "max": 0, "min": 0, "name": "name", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "text_dt_env", "max": 0, "min": 0, "name": "environment", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "bool_dt_active", "name": "is_active", "presentable": false, "required": false, "system": false, "type": "bool"},
				{"hidden": false, "id": "number_dt_reqs", "max": null, "min": null, "name": "total_requests", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "date_dt_lastused", "max": "", "min": "", "name": "last_used_at", "presentable": false, "required": false, "system": false, "type": "date"},
				{"hidden": false, "id": "number_dt_tokens", "max": null, "min": null, "name": "total_tokens_used", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_dt_rate", "max": null, "min": null, "name": "success_rate", "onlyInt": false, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "autodate_dt_created", "name": "created", "onCreate": true, "onUpdate": false, "presentable": false, "system": false, "type": "autodate"},
				{"hidden": false, "id": "autodate_dt_updated", "name": "updated", "onCreate": true, "onUpdate": true, "presentable": false, "system": false, "type": "autodate"}
			],
			"indexes": [
				"CREATE UNIQUE INDEX idx_dt_token ON dev_tokens (token)",
				"CREATE INDEX idx_dt_user ON dev_tokens (user)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_dev_tokens")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
