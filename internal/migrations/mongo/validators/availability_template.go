package validators

import "go.mongodb.org/mongo-driver/bson"

var dayTemplateSchema = bson.M{
	"bsonType": "object",
	"required": []string{"enabled"},
	"properties": bson.M{
		"enabled": bson.M{
			"bsonType": "bool",
		},
		"slots": bson.M{
			"bsonType": "array",
			"items": bson.M{
				"bsonType": "object",
				"required": []string{"start", "end"},
				"properties": bson.M{
					"start": bson.M{
						"bsonType": "string",
						"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
					},
					"end": bson.M{
						"bsonType": "string",
						"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
					},
				},
			},
		},
	},
}

var AvailabilityTemplateValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"provider_id",
			"days",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"provider_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"days": bson.M{
				"bsonType": "object",
				"required": []string{
					"Monday", "Tuesday", "Wednesday", "Thursday",
					"Friday", "Saturday", "Sunday",
				},
				"properties": bson.M{
					"Monday":    dayTemplateSchema,
					"Tuesday":   dayTemplateSchema,
					"Wednesday": dayTemplateSchema,
					"Thursday":  dayTemplateSchema,
					"Friday":    dayTemplateSchema,
					"Saturday":  dayTemplateSchema,
					"Sunday":    dayTemplateSchema,
				},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
