package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"recipient_id",
			"type",
			"title",
			"message",
			"read",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"recipient_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"type": bson.M{
				"enum": []string{
					"APPOINTMENT_CREATED",
					"APPOINTMENT_CONFIRMED",
					"APPOINTMENT_CANCELLED",
					"APPOINTMENT_COMPLETED",
					"CERTIFICATION_PENDING",
					"CERTIFICATION_APPROVED",
					"SYSTEM_ALERT",
				},
			},

			"title": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"message": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"action_ref": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"read": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var SlotLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"expires_at",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"expires_at": bson.M{
				"bsonType": "date",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
