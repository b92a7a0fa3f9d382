package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gosimple/slug"

	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

// SampleEvents is the catalogue loaded into an empty development database.
func SampleEvents() []*domain.Event {
	return []*domain.Event{
		{
			Slug: "react-summit-2024", Title: "React Summit 2024", Image: "/images/event1.png",
			Location: "Amsterdam, Netherlands", Date: "2024-06-14", Time: "09:00 - 18:00", Mode: "hybrid",
			Description: "The biggest React conference worldwide, covering the React ecosystem end to end.",
			Overview:    "Two tracks of talks and workshops from React core contributors and practitioners.",
			Agenda:      []string{"09:00 Keynote", "11:00 Server Components in practice", "14:00 Workshops"},
			Audience:    "Frontend engineers", Organizer: "GitNation",
			Tags: []string{"react", "javascript", "frontend"},
		},
		{
			Slug: "ethglobal-new-york-2024", Title: "ETHGlobal New York", Image: "/images/event2.png",
			Location: "New York, USA", Date: "2024-09-20", Time: "10:00 - 20:00", Mode: "offline",
			Description: "A weekend hackathon for builders on Ethereum.",
			Overview:    "Teams ship decentralized applications over 36 hours with mentors on site.",
			Agenda:      []string{"10:00 Opening", "12:00 Hacking starts", "18:00 Sponsor workshops"},
			Audience:    "Web3 developers", Organizer: "ETHGlobal",
			Tags: []string{"web3", "hackathon", "blockchain"},
		},
		{
			Slug: "jsconf-eu-2024", Title: "JSConf EU", Image: "/images/event3.png",
			Location: "Berlin, Germany", Date: "2024-08-10", Time: "08:30 - 17:30", Mode: "offline",
			Description: "A community conference about JavaScript and the open web.",
			Overview:    "Single track talks on language features, tooling and the runtime landscape.",
			Agenda:      []string{"08:30 Registration", "09:30 Talks", "17:00 Closing"},
			Audience:    "JavaScript developers", Organizer: "JSConf EU",
			Tags: []string{"javascript", "frontend", "community"},
		},
		{
			Slug: "hackmit-2024", Title: "HackMIT 2024", Image: "/images/event4.png",
			Location: "Cambridge, MA, USA", Date: "2024-09-14", Time: "09:00 - 21:00", Mode: "offline",
			Description: "MIT's annual undergraduate hackathon.",
			Overview:    "Students build projects across AI, hardware and the web over one weekend.",
			Agenda:      []string{"09:00 Check-in", "11:00 Hacking starts", "20:00 Demos"},
			Audience:    "Students", Organizer: "HackMIT",
			Tags: []string{"hackathon", "ai", "students"},
		},
		{
			Slug: "google-io-extended-2024", Title: "Google I/O Extended", Image: "/images/event5.png",
			Location: "Mountain View, CA, USA", Date: "2024-05-28", Time: "10:00 - 17:00", Mode: "hybrid",
			Description: "Local community viewing and talks following Google I/O.",
			Overview:    "Recaps of announcements with hands-on codelabs.",
			Agenda:      []string{"10:00 Keynote replay", "13:00 Codelabs", "16:00 Networking"},
			Audience:    "Android and web developers", Organizer: "Google Developer Groups",
			Tags: []string{"ai", "cloud", "community"},
		},
		{
			Slug: "devcon-7-2024", Title: "Devcon 7", Image: "/images/event6.png",
			Location: "Southeast Asia (TBA)", Date: "2024-11-12", Time: "09:30 - 18:30", Mode: "offline",
			Description: "The Ethereum Foundation's conference for developers, researchers and builders.",
			Overview:    "Four days of talks on protocol research, tooling and applications.",
			Agenda:      []string{"09:30 Opening", "10:30 Research track", "15:00 Community sessions"},
			Audience:    "Ethereum ecosystem", Organizer: "Ethereum Foundation",
			Tags: []string{"web3", "blockchain", "research"},
		},
		{
			Slug: "open-source-summit-na-2024", Title: "Open Source Summit North America", Image: "/images/event-full.png",
			Location: "Seattle, WA, USA", Date: "2024-07-15", Time: "08:00 - 17:00", Mode: "offline",
			Description: "The Linux Foundation's gathering of open source developers and maintainers.",
			Overview:    "Tracks on cloud native, security, and open source program offices.",
			Agenda:      []string{"08:00 Breakfast", "09:00 Keynotes", "11:00 Breakouts"},
			Audience:    "Open source contributors", Organizer: "The Linux Foundation",
			Tags: []string{"open-source", "cloud", "community"},
		},
	}
}

// SeedEvents inserts each event whose slug is not stored yet.
func SeedEvents(ctx context.Context, repo domain.EventRepository, events []*domain.Event, logger *slog.Logger) error {
	inserted := 0
	for _, e := range events {
		if !slug.IsSlug(e.Slug) {
			return fmt.Errorf("seed event %q: invalid slug: %w", e.Slug, domain.ErrInvalidInput)
		}
		_, err := repo.GetBySlug(ctx, e.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("seed event %q: %w", e.Slug, err)
		}
		now := time.Now().UTC()
		e.CreatedAt, e.UpdatedAt = now, now
		if err := repo.Create(ctx, e); err != nil {
			return fmt.Errorf("seed event %q: %w", e.Slug, err)
		}
		inserted++
	}
	logger.Info("sample events seeded", "inserted", inserted, "total", len(events))
	return nil
}
