package migrations

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		jsonData := `{
			"id": "pbc_credential_usage",
			"name": "credential_usage",
			"type": "base",
			"system": false,
			"listRule": "user = @request.auth.id",
			"viewRule": "user = @request.auth.id",
			"createRule": null,
			"updateRule": null,
			"deleteRule": null,
			"fields": [
				{
					"autogeneratePattern": "[a-z0-9]{15}",
					"hidden": false,
					"id": "text_cu_id",
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
					"cascadeDelete": false,
					"collectionId": "_pb_users_auth_",
					"hidden": false,
					"id": "relation_cu_user",
					"maxSelect": 1,
					"minSelect": 0,
					"name": "user",
					"presentable": false,
					"required": false,
					"system": false,
					"type": "relation"
				},
				{"hidden": false, "id": "text_cu_credtype", "max": 0, "min": 0, "name": "credential_type", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": false, "id": "text_cu_credid", "max": 0, "min": 0, "name": "credential_id", "presentable": false, "required": true, "system": false, "type": "text"},
				{"hidden": false, "id": "text_cu_service", "max": 0, "min": 0, "name": "service", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "text_cu_endpoint", "max": 0, "min": 0, "name": "endpoint", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "text_cu_method", "max": 0, "min": 0, "name": "method", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "number_cu_status", "max": null, "min": null, "name": "status_code", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_cu_rtime", "max": null, "min": null, "name": "response_time_ms", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_cu_tokens", "max": null, "min": null, "name": "tokens_used", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_cu_reqsize", "max": null, "min": null, "name": "request_size_bytes", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "number_cu_respsize", "max": null, "min": null, "name": "response_size_bytes", "onlyInt": true, "presentable": false, "required": false, "system": false, "type": "number"},
				{"hidden": false, "id": "text_cu_errtype", "max": 0, "min": 0, "name": "error_type", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "text_cu_errmsg", "max": 0, "min": 0, "name": "error_message", "presentable": false, "required": false, "system": false, "type": "text"},
				{"hidden": false, "id": "date_cu_timestamp", "max": "", "min": "", "name": "timestamp", "presentable": false, "required": true, "system": false, "type": "date"},
				{"hidden": false, "id": "json_cu_metadata", "maxSize": 0, "name": "metadata", "presentable": false, "required": false, "system": false, "type": "json"},
				{"hidden": false, "id": "autodate_cu_created", "name": "created", "onCreate": true, "onUpdate": false, "presentable": false, "system": false, "type": "autodate"},
				{"hidden": false, "id": "autodate_cu_updated", "name": "updated", "onCreate": true, "onUpdate": true, "presentable": false, "system": false, "type": "autodate"}
			],
			"indexes": [
				"CREATE INDEX idx_cu_cred ON credential_usage (credential_type, credential_id)",
				"CREATE INDEX idx_cu_timestamp ON credential_usage (timestamp)"
			]
		}`

		collection := &core.Collection{}
		if err := json.Unmarshal([]byte(jsonData), &collection); err != nil {
			return err
		}

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("pbc_credential_usage")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
