// Package seed repopulates the database with generated sample campgrounds.
//
// It wipes every existing campground, ensures a well-known seed account
// exists, and inserts a fresh batch of randomly assembled listings — handy
// for demos and for exercising the index page with a full catalogue.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/sakif/gocamp/internal/apperror"
	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/model"
	"github.com/sakif/gocamp/internal/repository"
)

// Username and password of the account that owns all seeded campgrounds.
const (
	SeedUsername = "camper"
	SeedPassword = "password"
)

// Count is how many campgrounds a seeding run creates.
const Count = 50

const seedImage = "https://source.unsplash.com/collection/483251"

const seedDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, " +
	"sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad " +
	"minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea " +
	"commodo consequat."

var descriptors = []string{
	"Forest", "Ancient", "Petrified", "Roaring", "Cascade", "Tumbling",
	"Silent", "Redwood", "Bullfrog", "Maple", "Misty", "Elk", "Grizzly",
	"Ocean", "Sky", "Dusty", "Diamond",
}

var places = []string{
	"Flats", "Village", "Canyon", "Pond", "Group Camp", "Horse Camp",
	"Ghost Town", "Camp", "Dispersed Camp", "Backcountry", "River",
	"Creek", "Creekside", "Bay", "Spring", "Bayshore", "Sands", "Mule Camp",
	"Hunting Camp", "Cliffs", "Hollow",
}

var cities = []struct {
	City  string
	State string
}{
	{"Boulder", "CO"}, {"Bend", "OR"}, {"Missoula", "MT"}, {"Moab", "UT"},
	{"Asheville", "NC"}, {"Flagstaff", "AZ"}, {"Duluth", "MN"}, {"Ithaca", "NY"},
	{"Eugene", "OR"}, {"Bozeman", "MT"}, {"Taos", "NM"}, {"Juneau", "AK"},
	{"Burlington", "VT"}, {"Bar Harbor", "ME"}, {"Truckee", "CA"},
	{"Jackson", "WY"}, {"Marquette", "MI"}, {"Hood River", "OR"},
	{"Estes Park", "CO"}, {"Port Angeles", "WA"},
}

func sample(items []string) string {
	return items[rand.Intn(len(items))]
}

// Run wipes all campgrounds and inserts Count generated ones, authored by
// the seed user (created on first run, reused after).
func Run(
	ctx context.Context,
	campgrounds repository.CampgroundRepository,
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) error {
	author, err := ensureSeedUser(ctx, users, passwords)
	if err != nil {
		return err
	}

	// Delete one by one through the repository so membership rows are
	// cleaned up the same way the web delete flow does it.
	existing, err := campgrounds.List(ctx)
	if err != nil {
		return fmt.Errorf("seed: listing campgrounds: %w", err)
	}
	for _, c := range existing {
		if err := campgrounds.Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("seed: deleting campground %s: %w", c.ID, err)
		}
	}
	logger.Info("cleared existing campgrounds", slog.Int("count", len(existing)))

	for i := 0; i < Count; i++ {
		city := cities[rand.Intn(len(cities))]

		campground := &model.Campground{
			Title:       fmt.Sprintf("%s %s", sample(descriptors), sample(places)),
			Location:    fmt.Sprintf("%s, %s", city.City, city.State),
			Image:       seedImage,
			Price:       float64(rand.Intn(20) + 10),
			Description: seedDescription,
			AuthorID:    author.ID,
		}

		if err := campgrounds.Create(ctx, campground); err != nil {
			return fmt.Errorf("seed: creating campground %d: %w", i, err)
		}
	}

	logger.Info("seeded campgrounds",
		slog.Int("count", Count),
		slog.String("author", author.Username),
	)
	return nil
}

func ensureSeedUser(ctx context.Context, users repository.UserRepository, passwords *auth.PasswordService) (*model.User, error) {
	user, err := users.GetUserByUsername(ctx, SeedUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("seed: looking up seed user: %w", err)
	}

	hash, err := passwords.Hash(SeedPassword)
	if err != nil {
		return nil, fmt.Errorf("seed: hashing seed password: %w", err)
	}

	user = &model.User{
		Username:     SeedUsername,
		Email:        "camper@example.com",
		PasswordHash: hash,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("seed: creating seed user: %w", err)
	}

	return user, nil
}
