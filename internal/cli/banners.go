package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/filex"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
)

// Add prompts for the banner fields and stores the banner for the
// logged-in account.
func (a *App) Add(ctx context.Context) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	imagePath, err := getSimpleText(a.reader, "Image file (empty for none)", a.out)
	if err != nil {
		return err
	}
	day, err := getSimpleText(a.reader, "Release day (Monday..Sunday)", a.out)
	if err != nil {
		return err
	}
	releaseTime, err := getSimpleText(a.reader, "Release time (HH:MM)", a.out)
	if err != nil {
		return err
	}
	current, err := GetCount(a.reader, "Current episodes", a.out)
	if err != nil {
		return err
	}
	total, err := GetCount(a.reader, "Total episodes", a.out)
	if err != nil {
		return err
	}

	var image []byte
	if imagePath != "" {
		if image, err = filex.ReadLimited(imagePath, filex.MaxImageSize); err != nil {
			return err
		}
	}

	err = a.services.Catalog.AddBanner(ctx, owner, models.Banner{
		Image:           image,
		Title:           title,
		ReleaseDay:      models.Weekday(day),
		ReleaseTime:     releaseTime,
		CurrentEpisodes: current,
		TotalEpisodes:   total,
	})
	if errors.Is(err, common.ErrConflict) {
		return fmt.Errorf("banner %q already exists", title)
	}
	if err != nil {
		return err
	}

	a.println("Banner added")
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if err := a.services.Catalog.DeleteBanner(ctx, owner, title); err != nil {
		return err
	}
	a.println("Done")
	return nil
}

func (a *App) List(ctx context.Context) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	banners, err := a.services.Catalog.ListAllBanners(ctx, owner)
	if err != nil {
		return err
	}
	a.printBanners(banners)
	return nil
}

func (a *App) Page(ctx context.Context) error {
	return a.listPage(ctx, a.services.Catalog.ListPaged)
}

func (a *App) Sorted(ctx context.Context) error {
	return a.listPage(ctx, a.services.Catalog.ListSortedByReleaseDay)
}

func (a *App) Search(ctx context.Context) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	query, err := getSimpleText(a.reader, "Search for", a.out)
	if err != nil {
		return err
	}
	page, err := a.readPage()
	if err != nil {
		return err
	}
	banners, err := a.services.Catalog.SearchBanners(ctx, owner, query, page)
	if err != nil {
		return err
	}
	a.printBanners(banners)
	return nil
}

func (a *App) listPage(ctx context.Context, fetch func(context.Context, string, models.Page) ([]models.Banner, error)) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	page, err := a.readPage()
	if err != nil {
		return err
	}
	banners, err := fetch(ctx, owner, page)
	if err != nil {
		return err
	}
	a.printBanners(banners)
	return nil
}

func (a *App) readPage() (models.Page, error) {
	size, err := GetInt(a.reader, "Page size", defaultPageSize, a.out)
	if err != nil {
		return models.Page{}, err
	}
	index, err := GetInt(a.reader, "Page index", 0, a.out)
	if err != nil {
		return models.Page{}, err
	}
	return models.Page{Size: size, Index: index}, nil
}

func (a *App) SetCurrent(ctx context.Context) error {
	return a.setCount(ctx, "Current episodes", a.services.Catalog.UpdateCurrentEpisodes)
}

func (a *App) SetTotal(ctx context.Context) error {
	return a.setCount(ctx, "Total episodes", a.services.Catalog.UpdateTotalEpisodes)
}

func (a *App) SetDay(ctx context.Context) error {
	return a.setText(ctx, "Release day (Monday..Sunday)", a.services.Catalog.UpdateReleaseDay)
}

func (a *App) SetTime(ctx context.Context) error {
	return a.setText(ctx, "Release time (HH:MM)", a.services.Catalog.UpdateReleaseTime)
}

func (a *App) setCount(ctx context.Context, prompt string, update func(context.Context, string, string, uint32) error) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	n, err := GetCount(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if err := update(ctx, owner, title, n); err != nil {
		return err
	}
	a.println("Done")
	return nil
}

func (a *App) setText(ctx context.Context, prompt string, update func(context.Context, string, string, string) error) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if err := update(ctx, owner, title, v); err != nil {
		return err
	}
	a.println("Done")
	return nil
}

// Countdown prints the time left until the next episode of one banner.
func (a *App) Countdown(ctx context.Context) error {
	owner, err := a.identity()
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	banners, err := a.services.Catalog.ListAllBanners(ctx, owner)
	if err != nil {
		return err
	}
	for _, b := range banners {
		if b.Title != title {
			continue
		}
		d, ok := b.TimeUntilRelease(a.now())
		if !ok {
			return fmt.Errorf("release time %q is not in HH:MM form", b.ReleaseTime)
		}
		a.println(models.FormatCountdown(d))
		return nil
	}
	return fmt.Errorf("banner %q: %w", title, common.ErrorNotFound)
}

func (a *App) printBanners(banners []models.Banner) {
	if len(banners) == 0 {
		a.println("No banners")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-30s %-10s %-6s %-9s %s\n", "TITLE", "DAY", "TIME", "EPISODES", "NEXT")
	now := a.now()
	for _, b := range banners {
		next := "-"
		if d, ok := b.TimeUntilRelease(now); ok {
			next = models.FormatCountdown(d)
		}
		fmt.Fprintf(&sb, "%-30s %-10s %-6s %4d/%-4d %s\n",
			b.Title, b.ReleaseDay, b.ReleaseTime, b.CurrentEpisodes, b.TotalEpisodes, next)
	}
	a.println(strings.TrimRight(sb.String(), "\n"))
}
