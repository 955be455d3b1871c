package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/crease-live/crease-backend/app/shared/types/sharedtypes"
)

// TestDataGenerator produces deterministic cricket fixtures. The same seed
// yields the same teams, so failures reproduce.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator with the given seed.
func NewTestDataGenerator(seed uint64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(seed)}
}

// GenerateTeam builds one side with the given number of players. Player IDs
// are stable per tag and index; names come from the faker.
func (g *TestDataGenerator) GenerateTeam(tag sharedtypes.TeamTag, size int) sharedtypes.Team {
	players := make([]sharedtypes.Player, size)
	for i := range players {
		players[i] = sharedtypes.Player{
			ID:   sharedtypes.PlayerID(fmt.Sprintf("%s-p%d", tag, i+1)),
			Name: g.faker.Name(),
		}
	}
	return sharedtypes.Team{
		Tag:     tag,
		Name:    g.faker.City(),
		Players: players,
	}
}

// GenerateTeams builds two equal-sized sides with disjoint player IDs.
func (g *TestDataGenerator) GenerateTeams(size int) (sharedtypes.Team, sharedtypes.Team) {
	return g.GenerateTeam(sharedtypes.TeamA, size), g.GenerateTeam(sharedtypes.TeamB, size)
}
