package cmd

import (
	"context"
	"fmt"
)

// PersonCmd groups the followed people subcommands.
type PersonCmd struct {
	Add    PersonAddCmd    `cmd:"" help:"Follow a person by TMDB id"`
	Ls     PersonLsCmd     `cmd:"" help:"List followed people"`
	Remove PersonRemoveCmd `cmd:"" help:"Stop following a person"`
}

// PersonAddCmd represents the person add command
type PersonAddCmd struct {
	ID int `arg:"" help:"TMDB person id"`
}

func (p *PersonAddCmd) Run(ctx context.Context) error {
	if err := requirePositive("person id", p.ID); err != nil {
		return err
	}

	a, err := openApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	person, added, err := a.service.AddPerson(ctx, p.ID)
	if err != nil {
		return err
	}
	if !added {
		_, _ = fmt.Fprintf(stdout, "Already following %s\n", person.Name)
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Following %s (%s)\n", person.Name, person.KnownForDepartment)
	return nil
}

// PersonLsCmd represents the person ls command
type PersonLsCmd struct{}

func (p *PersonLsCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	people, err := a.stores.People.ListPeople()
	if err != nil {
		return err
	}
	if len(people) == 0 {
		_, _ = fmt.Fprintln(stdout, "Not following anyone")
		return nil
	}
	for _, person := range people {
		_, _ = fmt.Fprintf(stdout, "%8d  %s  %s\n", person.TMDBID, person.Name, person.KnownForDepartment)
	}
	return nil
}

// PersonRemoveCmd represents the person remove command
type PersonRemoveCmd struct {
	ID int `arg:"" help:"TMDB person id"`
}

func (p *PersonRemoveCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.stores.People.DeletePerson(p.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Stopped following person %d\n", p.ID)
	return nil
}
