package validators

import "go.mongodb.org/mongo-driver/bson"

var AppointmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customer_id",
			"provider_id",
			"service_id",
			"scheduled_time",
			"duration_minutes",
			"status",
			"total_cost",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"customer_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"provider_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"service_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"scheduled_time": bson.M{
				"bsonType": "date",
			},

			"duration_minutes": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  1440,
			},

			"status": bson.M{
				"enum": []string{"PENDING", "CONFIRMED", "COMPLETED", "CANCELLED"},
			},

			"total_cost": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 1000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
