package cmd

import (
	"context"
	"fmt"
)

// ListCmd groups the custom list subcommands.
type ListCmd struct {
	Create ListCreateCmd `cmd:"" help:"Create a list"`
	Rename ListRenameCmd `cmd:"" help:"Rename a list"`
	Delete ListDeleteCmd `cmd:"" help:"Delete a list and its items"`
	Add    ListAddCmd    `cmd:"" help:"Add a title to a list"`
	Remove ListRemoveCmd `cmd:"" help:"Remove a title from a list"`
	Show   ListShowCmd   `cmd:"" help:"Show the titles on a list"`
	Ls     ListLsCmd     `cmd:"" help:"Show all lists"`
}

// ListCreateCmd represents the list create command
type ListCreateCmd struct {
	Name        string `arg:"" help:"List name"`
	Description string `short:"d" help:"Optional description"`
}

func (l *ListCreateCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.service.CreateList(l.Name, l.Description)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Created list %q (id %d)\n", list.Name, list.ID)
	return nil
}

// ListRenameCmd represents the list rename command
type ListRenameCmd struct {
	Name    string `arg:"" help:"Current name"`
	NewName string `arg:"" help:"New name"`
}

func (l *ListRenameCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.stores.Lists.GetListByName(l.Name)
	if err != nil {
		return err
	}
	if _, err := a.stores.Lists.GetListByName(l.NewName); err == nil {
		return fmt.Errorf("list %q already exists", l.NewName)
	}
	if err := a.stores.Lists.RenameList(list.ID, l.NewName); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Renamed %q to %q\n", l.Name, l.NewName)
	return nil
}

// ListDeleteCmd represents the list delete command
type ListDeleteCmd struct {
	Name string `arg:"" help:"List name"`
}

func (l *ListDeleteCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.stores.Lists.GetListByName(l.Name)
	if err != nil {
		return err
	}
	if err := a.stores.Lists.DeleteList(list.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Deleted list %q\n", l.Name)
	return nil
}

// ListAddCmd represents the list add command
type ListAddCmd struct {
	Name string `arg:"" help:"List name"`
	Type string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID   int    `arg:"" help:"TMDB id"`
}

func (l *ListAddCmd) Run(ctx context.Context) error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	added, err := a.service.AddToList(ctx, l.Name, l.ID, l.Type)
	if err != nil {
		return err
	}
	if !added {
		_, _ = fmt.Fprintf(stdout, "%s %d is already on %q\n", l.Type, l.ID, l.Name)
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "Added %s %d to %q\n", l.Type, l.ID, l.Name)
	return nil
}

// ListRemoveCmd represents the list remove command
type ListRemoveCmd struct {
	Name string `arg:"" help:"List name"`
	Type string `arg:"" help:"movie or tv" enum:"movie,tv"`
	ID   int    `arg:"" help:"TMDB id"`
}

func (l *ListRemoveCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.stores.Lists.GetListByName(l.Name)
	if err != nil {
		return err
	}
	if err := a.stores.Lists.RemoveFromList(list.ID, l.ID, l.Type); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Removed %s %d from %q\n", l.Type, l.ID, l.Name)
	return nil
}

// ListShowCmd represents the list show command
type ListShowCmd struct {
	Name string `arg:"" help:"List name"`
}

func (l *ListShowCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.stores.Lists.GetListByName(l.Name)
	if err != nil {
		return err
	}
	items, err := a.stores.Lists.ListItems(list.ID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "%s (%d titles)\n", list.Name, len(items))
	if list.Description != "" {
		_, _ = fmt.Fprintln(stdout, list.Description)
	}
	for _, item := range items {
		_, _ = fmt.Fprintf(stdout, "  %-5s %8d  %s\n", item.MediaType, item.TMDBID, item.Title)
	}
	return nil
}

// ListLsCmd represents the list ls command
type ListLsCmd struct{}

func (l *ListLsCmd) Run() error {
	a, err := openApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	lists, err := a.stores.Lists.GetLists()
	if err != nil {
		return err
	}
	if len(lists) == 0 {
		_, _ = fmt.Fprintln(stdout, "No lists")
		return nil
	}
	for _, list := range lists {
		items, err := a.stores.Lists.ListItems(list.ID)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "%3d  %s (%d)\n", list.ID, list.Name, len(items))
	}
	return nil
}
