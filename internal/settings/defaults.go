package settings

import "time"

// schemaVersion is the current settings schema. Bump it when a migration is
// added to migrateSchema.
const schemaVersion = 1

// sectionNames lists the six top-level sections in seeding order.
var sectionNames = []string{"ui", "notifications", "sync", "features", "preferences", "app"}

// defaultSections builds the factory defaults for every section. The webdav
// password is intentionally absent: secrets never live in the plaintext
// partition.
func defaultSections() map[string]map[string]any {
	return map[string]map[string]any{
		"ui": {
			"progressDirection": "horizontal",
			"enableAnimations":  true,
			"theme":             "auto",
			"language":          "zh-CN",
			"fontSize":          "medium",
			"sidebarCollapsed":  false,
		},
		"notifications": {
			"enabled":          true,
			"deadlineReminder": true,
			"dailyStats":       true,
			"weeklyReport":     false,
			"sound":            true,
			"vibration":        false,
			"reminderAdvance":  60,
		},
		"sync": {
			"enabled":      false,
			"provider":     "webdav",
			"autoSync":     true,
			"syncInterval": 30,
			"lastSyncTime": nil,
			"webdav": map[string]any{
				"url":      "",
				"username": "",
			},
		},
		"features": {
			"autoArchive":        true,
			"autoArchiveDays":    30,
			"aiEnabled":          false,
			"aiProvider":         "openai",
			"habitTracking":      true,
			"statistics":         true,
			"backup":             true,
			"autoBackupInterval": 7,
		},
		"preferences": {
			"startPage":       "dashboard",
			"taskSortBy":      "deadline",
			"defaultTaskType": "task",
			"defaultPriority": "medium",
			"defaultCategory": "personal",
			"confirmDelete":   true,
			"confirmComplete": false,
		},
		"app": {
			"version":        "0.1.0",
			"firstRun":       true,
			"installDate":    time.Now().UnixMilli(),
			"launchCount":    0,
			"lastLaunchTime": nil,
		},
	}
}
