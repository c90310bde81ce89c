package validators

import "go.mongodb.org/mongo-driver/bson"

// ClockTimePattern matches zero-padded 24h HH:MM.
const ClockTimePattern = `^([01][0-9]|2[0-3]):[0-5][0-9]$`

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"resource_id",
			"block",
			"day_of_week",
			"start_time",
			"end_time",
			"purpose",
			"requester_role",
			"reservation_type",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"resource_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"block": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"day_of_week": bson.M{
				"bsonType": "string",
				"enum": []string{
					"Sunday",
					"Monday",
					"Tuesday",
					"Wednesday",
					"Thursday",
					"Friday",
					"Saturday",
				},
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  ClockTimePattern,
			},

			"end_time": bson.M{
				"bsonType": "string",
				"pattern":  ClockTimePattern,
			},

			"purpose": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"requester_role": bson.M{
				"bsonType": "string",
				"enum":     []string{"Senior", "Junior", "Student"},
			},

			"reservation_type": bson.M{
				"bsonType": "string",
				"enum":     []string{"Exam", "ExtraClass", "Event"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
