package validators

import "go.mongodb.org/mongo-driver/bson"

var ClassroomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"block",
			"floor",
			"capacity",
			"available",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"block": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 32,
			},

			"floor": bson.M{
				"bsonType": bson.A{"int", "long"},
				"minimum":  0,
				"maximum":  200,
			},

			"capacity": bson.M{
				"bsonType": bson.A{"int", "long"},
				"minimum":  1,
				"maximum":  1000,
			},

			"available": bson.M{
				"bsonType": "bool",
			},

			"locked_until": bson.M{
				"bsonType": bson.A{"date", "null"},
			},
		},
	},
}
