// Package ui provides the view-state coordination layer for Grid Manager.
// This file contains the desktop notification adapter.
package ui

import (
	"os/exec"

	"github.com/yllada/grid-manager/common"
)

// NotificationType represents the type of notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationWarning
	NotificationError
)

// Notification represents a system notification
type Notification struct {
	Title   string
	Message string
	Type    NotificationType
	Icon    string
}

// ShowNotification displays a system notification using notify-send
func ShowNotification(n Notification) error {
	icon := n.Icon
	if icon == "" {
		switch n.Type {
		case NotificationWarning:
			icon = "dialog-warning"
		case NotificationError:
			icon = "dialog-error"
		default:
			icon = "mail-unread"
		}
	}

	urgency := "normal"
	switch n.Type {
	case NotificationError:
		urgency = "critical"
	case NotificationInfo:
		urgency = "low"
	}

	cmd := exec.Command("notify-send",
		"--app-name="+common.AppName,
		"--icon="+icon,
		"--urgency="+urgency,
		n.Title,
		n.Message,
	)

	if err := cmd.Run(); err != nil {
		common.LogWarn("Error showing notification: %v", err)
		return err
	}
	return nil
}

// DesktopNotifier implements common.Notifier over notify-send.
type DesktopNotifier struct{}

// Notify sends a notification with the given title and message.
func (DesktopNotifier) Notify(title, message string) error {
	return ShowNotification(Notification{
		Title:   title,
		Message: message,
		Type:    NotificationInfo,
	})
}

// NotifyWithIcon sends a notification with a custom icon.
func (DesktopNotifier) NotifyWithIcon(title, message, icon string) error {
	return ShowNotification(Notification{
		Title:   title,
		Message: message,
		Type:    NotificationInfo,
		Icon:    icon,
	})
}
