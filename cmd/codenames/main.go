package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"codenames-client/internal/app"
	"codenames-client/internal/config"
	"codenames-client/internal/logger"
	"codenames-client/internal/protocol"
	"codenames-client/internal/screens"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	a := app.New(app.Config{
		ServerURL:         cfg.ServerURL,
		IdentityPath:      cfg.IdentityPath,
		ReconnectAttempts: cfg.ReconnectAttempts,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
	}()

	go handleNotifications(a)
	go handleInput(a, cancel)

	log.Info("connecting", zap.String("url", cfg.ServerURL))
	if err := a.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("client stopped", zap.Error(err))
	}
}

func handleNotifications(a *app.App) {
	for note := range a.Notifications() {
		switch note.Type {
		case app.NoteScreenChanged:
			fmt.Printf("\n== %s ==\n", note.Screen)
			printScreen(a)
		case app.NoteStateUpdated:
			printScreen(a)
		case app.NoteStatusChanged:
			fmt.Printf("[connection: %s]\n", note.Status)
		}
	}
}

func printScreen(a *app.App) {
	switch a.Screen() {
	case screens.ScreenLobbySelect:
		ls := a.LobbySelect()
		if ls.AwaitingIdentity() {
			fmt.Println("connecting...")
			return
		}
		for _, l := range ls.Lobbies() {
			status := "open"
			if l.Game {
				status = "in progress"
			} else if !l.Joinable() {
				status = "full"
			}
			fmt.Printf("  %s  %s  %d/%d  %s\n", l.ID, l.Name, l.Players, protocol.MaxLobbyPlayers, status)
		}

	case screens.ScreenWelcome:
		fmt.Println("enter a display name with: name <yourname>")

	case screens.ScreenRoleSelect:
		rs := a.RoleSelect()
		for i, role := range protocol.Roles {
			holder := "-"
			if p, ok := rs.RoleHolder(role); ok {
				holder = p.Name
			}
			fmt.Printf("  [%d] %-15s %s\n", i, role, holder)
		}

	case screens.ScreenGame:
		g := a.Game()
		for _, tile := range g.Board() {
			mark := " "
			if tile.Revealed {
				mark = "*"
			}
			fmt.Printf("  %s%-14s(%s)", mark, tile.Word, tile.Team)
		}
		fmt.Println()
		if clue, ok := g.Clue(); ok {
			fmt.Printf("clue: %s, %d\n", clue.Word, clue.Number)
		}
		fmt.Println(g.TurnNarration())

	case screens.ScreenError:
		fmt.Println("something went wrong; type 'restart' to return to the start")
	}
}

func handleInput(a *app.App, cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit":
			cancel()
			return
		case "lobbies":
			a.LobbySelect().RefreshLobbies()
		case "create":
			a.LobbySelect().CreateLobby(strings.Join(fields[1:], " "))
		case "join":
			if len(fields) > 1 {
				a.LobbySelect().JoinLobby(fields[1])
			}
		case "name":
			a.Welcome().Confirm(strings.Join(fields[1:], " "))
		case "role":
			if len(fields) > 1 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					a.RoleSelect().ChooseRole(protocol.Role(n))
				}
			}
		case "ready":
			a.RoleSelect().SetReady(true)
		case "unready":
			a.RoleSelect().SetReady(false)
		case "guess":
			if len(fields) > 1 {
				a.Game().GuessTile(fields[1])
			}
		case "clue":
			if len(fields) > 2 {
				if n, err := strconv.Atoi(fields[2]); err == nil {
					a.Game().ProvideClue(fields[1], n)
				}
			}
		case "restart":
			a.ErrorScreen().ReturnToStart()
		default:
			fmt.Println("commands: lobbies create join name role ready unready guess clue restart quit")
		}
	}
}
