package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/crawl"
)

// NoteStore stages exported notes and publishes them as a batch.
type NoteStore interface {
	notegrab.NoteWriter
	Commit() error
	Abort() error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Grabber    *crawl.Grabber
	Notes      notegrab.NoteService
	Store      NoteStore
	Parser     notegrab.Parser
	MetaParser notegrab.Parser
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetches and parses to stderr"`
	TZ      string `name:"tz" env:"NOTEGRAB_TZ" help:"Time zone for publish dates (default: local)"`
	DB      string `name:"db" env:"NOTEGRAB_DB" help:"Database path (default: ~/.notegrab/notegrab.db)"`

	Grab  GrabCmd  `cmd:"" help:"Grab notes from one or more links"`
	Parse ParseCmd `cmd:"" help:"Parse a saved note page"`
	List  ListCmd  `cmd:"" help:"List stored notes"`
}

// GrabCmd is the "grab" subcommand.
type GrabCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Note links (explore, share or xhslink short links)"`
	Format      string        `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
	Out         string        `short:"o" help:"Export notes as markdown files to this directory"`
	Browser     bool          `short:"b" help:"Render pages in a headless browser"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	NoMeta      bool          `help:"Do not fall back to meta tags on share pages"`
	NoStore     bool          `help:"Do not save notes to the database"`
	SkipStored  bool          `help:"Skip links whose notes are already in the database"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File   string `arg:"" help:"HTML file to parse ('-' for stdin)"`
	Format string `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
	NoMeta bool   `help:"Do not fall back to meta tags"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Author string `short:"a" help:"Only notes by this author ID"`
	Type   string `help:"Only notes of this type (video, normal)"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of notes"`
	Format string `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
}
