// Copyright 2026 The PCTE Help Desk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/pcte/helpdesk/lib/api"
	"github.com/pcte/helpdesk/lib/session"
)

const authTimeout = 30 * time.Second

func runLogin(client *api.Client, sessions *session.Store) error {
	username, err := prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	result, err := client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := sessions.Save(&session.Session{
		Username:    username,
		Name:        username,
		Role:        result.Role,
		AccessToken: result.AccessToken,
		SessionID:   result.SessionID,
	}); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s).\n", username, result.Role)
	return nil
}

func runRegister(client *api.Client) error {
	username, err := prompt("Username: ")
	if err != nil {
		return err
	}
	name, err := prompt("Display name (optional): ")
	if err != nil {
		return err
	}
	role, err := prompt("Role (blank for Trainee): ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()

	if err := client.Register(ctx, api.RegisterRequest{
		Username: username,
		Password: password,
		Name:     name,
		Role:     role,
	}); err != nil {
		return err
	}

	fmt.Printf("Account %s created. Sign in with \"helpdesk login\".\n", username)
	return nil
}

func runLogout(sessions *session.Store) error {
	if sessions.Current() == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo when stdin is a terminal, falling
// back to a plain line read for piped input.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt("")
	}
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
