package session

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/olekukonko/tablewriter"

	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/config"
	"github.com/smileynet/phonebook/internal/contact"
)

// grammar is the command set accepted on each line.
type grammar struct {
	AddContact    AddContactCmd    `cmd:"" help:"Add a contact, optionally with phones."`
	AddPhone      AddPhoneCmd      `cmd:"" help:"Add a phone to a contact."`
	EditPhone     EditPhoneCmd     `cmd:"" help:"Replace one of a contact's phones."`
	RemovePhone   RemovePhoneCmd   `cmd:"" help:"Remove a phone from a contact."`
	FindContact   FindContactCmd   `cmd:"" help:"Show a contact."`
	FindPhone     FindPhoneCmd     `cmd:"" help:"Check whether a contact has a phone."`
	FindByPhone   FindByPhoneCmd   `cmd:"" help:"Show which contact has a phone."`
	DeleteContact DeleteContactCmd `cmd:"" help:"Delete a contact."`
	List          ListCmd          `cmd:"" help:"List all contacts."`
	Browse        BrowseCmd        `cmd:"" help:"Open the interactive browser."`
	Help          HelpCmd          `cmd:"" help:"Show commands."`
	Quit          QuitCmd          `cmd:"" aliases:"exit" help:"Leave the shell."`
}

// AddContactCmd creates a record. Phones are validated before the record is
// added, so a bad phone leaves the book unchanged.
type AddContactCmd struct {
	Name   string   `arg:"" help:"Contact name."`
	Phones []string `arg:"" optional:"" help:"Phone numbers (10 digits)."`
}

// Run executes add-contact.
func (c *AddContactCmd) Run(s *Session) error {
	r := contact.NewRecord(c.Name)
	for _, p := range c.Phones {
		if err := r.AddPhone(p); err != nil {
			return fmt.Errorf("add-contact: %w", err)
		}
	}
	s.println(string(s.book.AddRecord(r)))
	return nil
}

// AddPhoneCmd appends a phone to an existing contact.
type AddPhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number (10 digits)."`
}

// Run executes add-phone.
func (c *AddPhoneCmd) Run(s *Session) error {
	r, err := s.book.Find(c.Name)
	if err != nil {
		return fmt.Errorf("add-phone: %w", err)
	}
	if err := r.AddPhone(c.Phone); err != nil {
		return fmt.Errorf("add-phone: %w", err)
	}
	s.println(r.String())
	return nil
}

// EditPhoneCmd replaces a phone in place.
type EditPhoneCmd struct {
	Name string `arg:"" help:"Contact name."`
	Old  string `arg:"" help:"Phone to replace."`
	New  string `arg:"" help:"Replacement phone (10 digits)."`
}

// Run executes edit-phone. An Old value the contact does not hold changes nothing.
func (c *EditPhoneCmd) Run(s *Session) error {
	r, err := s.book.Find(c.Name)
	if err != nil {
		return fmt.Errorf("edit-phone: %w", err)
	}
	if err := r.EditPhone(c.Old, c.New); err != nil {
		return fmt.Errorf("edit-phone: %w", err)
	}
	s.println(r.String())
	return nil
}

// RemovePhoneCmd deletes a phone from a contact.
type RemovePhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone to remove."`
}

// Run executes remove-phone.
func (c *RemovePhoneCmd) Run(s *Session) error {
	r, err := s.book.Find(c.Name)
	if err != nil {
		return fmt.Errorf("remove-phone: %w", err)
	}
	if err := r.RemovePhone(c.Phone); err != nil {
		return fmt.Errorf("remove-phone: %w", err)
	}
	s.println(r.String())
	return nil
}

// FindContactCmd prints one contact.
type FindContactCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes find-contact.
func (c *FindContactCmd) Run(s *Session) error {
	r, err := s.book.Find(c.Name)
	if err != nil {
		return fmt.Errorf("find-contact: %w", err)
	}
	s.println(r.String())
	return nil
}

// FindPhoneCmd checks a single contact for a phone.
type FindPhoneCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone to look for."`
}

// Run executes find-phone.
func (c *FindPhoneCmd) Run(s *Session) error {
	r, err := s.book.Find(c.Name)
	if err != nil {
		return fmt.Errorf("find-phone: %w", err)
	}
	if p, ok := r.FindPhone(c.Phone); ok {
		s.println(r.Name() + ": " + p)
	} else {
		s.println("no match")
	}
	return nil
}

// FindByPhoneCmd prints the first contact holding a phone.
type FindByPhoneCmd struct {
	Phone string `arg:"" help:"Phone to look for."`
}

// Run executes find-by-phone.
func (c *FindByPhoneCmd) Run(s *Session) error {
	if name, ok := s.book.FindByPhone(c.Phone); ok {
		s.println(name)
	} else {
		s.println(book.NoMatch)
	}
	return nil
}

// DeleteContactCmd removes a contact.
type DeleteContactCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes delete-contact.
func (c *DeleteContactCmd) Run(s *Session) error {
	status, err := s.book.Delete(c.Name)
	if err != nil {
		return fmt.Errorf("delete-contact: %w", err)
	}
	s.println(string(status))
	return nil
}

// ListCmd prints every contact in insertion order.
type ListCmd struct{}

// Run executes list.
func (c *ListCmd) Run(s *Session) error {
	records := s.book.Records()
	if len(records) == 0 {
		s.println("No contacts")
		return nil
	}

	if s.style != config.StyleTable {
		for _, r := range records {
			s.println(r.String())
		}
		return nil
	}

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Name", "Phones"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, r := range records {
		phones := make([]string, 0, r.Len())
		for _, p := range r.Phones() {
			phones = append(phones, p.String())
		}
		table.Append([]string{r.Name(), strings.Join(phones, "; ")})
	}
	table.Render()
	return nil
}

// BrowseCmd hands the book to the interactive browser.
type BrowseCmd struct{}

// Run executes browse.
func (c *BrowseCmd) Run(s *Session) error {
	if s.browse == nil {
		return fmt.Errorf("browse: %w", ErrNoBrowser)
	}
	if err := s.browse(s.book); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// HelpCmd lists the available commands.
type HelpCmd struct{}

// Run executes help.
func (c *HelpCmd) Run(s *Session, app *kong.Application) error {
	width := 0
	var nodes []*kong.Node
	for _, n := range app.Children {
		if n.Type != kong.CommandNode || n.Hidden {
			continue
		}
		nodes = append(nodes, n)
		if w := len(n.Summary()); w > width {
			width = w
		}
	}
	for _, n := range nodes {
		_, _ = fmt.Fprintf(s.out, "  %-*s  %s\n", width, n.Summary(), n.Help)
	}
	return nil
}

// QuitCmd ends the shell.
type QuitCmd struct{}

// Run executes quit.
func (c *QuitCmd) Run(*Session) error {
	return ErrQuit
}

func (s *Session) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}
