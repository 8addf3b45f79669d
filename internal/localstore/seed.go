package localstore

import (
	"strings"
	"time"

	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
)

var demoNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://lifesync.app/demo"))

// DemoID returns the stable id of a demo fixture, e.g. "user/1" or
// "channel/g1c1".
func DemoID(name string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(name))
}

func avatar(seed string) *string {
	url := "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
	return &url
}

func demoContact(id, name, tag string, presence models.Presence) models.User {
	first, _, _ := strings.Cut(name, " ")
	return models.User{
		ID:        DemoID("user/" + id),
		FullName:  name,
		AvatarURL: avatar(first),
		Tag:       tag,
		Presence:  presence,
		Theme:     models.ThemeLight,
		Language:  "de",
		Timezone:  "Europe/Berlin",
	}
}

// DemoUser is the account a fresh local session starts as.
func DemoUser() models.User {
	u := demoContact("1", "Max Mustermann", "#1337", models.Online)
	u.Email = "max@lifesync.app"
	return u
}

// DemoSeed is the fixture set of a demo session. Message times are relative
// to now.
func DemoSeed(now time.Time) Seed {
	me := DemoUser()
	lena := demoContact("2", "Lena Schmidt", "#5678", models.Online)
	tom := demoContact("3", "Tom Wagner", "#9012", models.Away)
	anna := demoContact("4", "Anna Becker", "#4321", models.Offline)

	channel := func(id, name string) models.Channel {
		return models.Channel{ID: DemoID("channel/" + id), Name: name}
	}
	general := channel("g1c1", "allgemein")

	read := func(at time.Time) *time.Time { return &at }
	ago := func(min int) time.Time { return now.Add(-time.Duration(min) * time.Minute).UTC() }

	return Seed{
		Friends: []models.User{lena, tom},
		Requests: []models.FriendRequest{{
			ID:        DemoID("request/req1"),
			From:      anna.Profile(),
			ToUserID:  &me.ID,
			Status:    models.RequestPending,
			CreatedAt: ago(60),
		}},
		Groups: []models.Group{
			{
				ID:       DemoID("group/group1"),
				Name:     "Projekt Alpha",
				Icon:     "🚀",
				Members:  []uuid.UUID{me.ID, lena.ID},
				Channels: []models.Channel{general, channel("g1c2", "planung")},
			},
			{
				ID:       DemoID("group/group2"),
				Name:     "Wochenendtrip",
				Icon:     "✈️",
				Members:  []uuid.UUID{me.ID, tom.ID},
				Channels: []models.Channel{channel("g2c1", "chat")},
			},
		},
		Messages: []models.Message{
			{
				ID:          DemoID("message/m1"),
				SenderID:    lena.ID,
				RecipientID: &me.ID,
				Content:     "Hey, wie gehts?",
				CreatedAt:   ago(5),
			},
			{
				ID:        DemoID("message/m2"),
				SenderID:  lena.ID,
				ChannelID: &general.ID,
				Content:   "Willkommen im Projekt!",
				ReadAt:    read(ago(10)),
				CreatedAt: ago(10),
			},
			{
				ID:        DemoID("message/m3"),
				SenderID:  me.ID,
				ChannelID: &general.ID,
				Content:   "Danke! Freut mich, dabei zu sein.",
				ReadAt:    read(ago(9)),
				CreatedAt: ago(9),
			},
		},
	}
}
