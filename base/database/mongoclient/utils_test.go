package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMakeBsonM(t *testing.T) {
	req := require.New(t)

	boolPtr := func(v bool) *bool { return &v }

	type patchable struct {
		Status    string `bson:"status,omitempty"`
		IsRead    *bool  `bson:"isRead,omitempty"`
		Untouched string `bson:"untouched,omitempty"`
		Skipped   string `bson:"-"`
	}

	m, err := MakeBsonM(&patchable{
		Status:  "OPEN",
		IsRead:  boolPtr(false),
		Skipped: "nope",
	})
	req.NoError(err)
	req.Equal(bson.M{
		"status": "OPEN",
		"isRead": false,
	}, m)
}
