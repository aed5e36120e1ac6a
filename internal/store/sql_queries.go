package store

const (
	insertTask = `
		INSERT INTO tasks (
			id,
			title,
			description,
			type,
			priority,
			category,
			deadline,
			completed,
			created_at,
			updated_at,
			tags,
			progress,
			streak,
			is_starred,
			is_archived,
			is_deleted,
			version,
			sync_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 1, 'pending');`

	taskColumns = `
			id,
			title,
			description,
			type,
			priority,
			category,
			deadline,
			completed,
			created_at,
			updated_at,
			tags,
			progress,
			streak,
			is_starred,
			is_archived,
			is_deleted,
			version,
			sync_status,
			last_sync_at`

	getAllTasks = `
		SELECT` + taskColumns + `
		FROM tasks
		WHERE is_deleted = 0
		ORDER BY created_at DESC;`

	getTaskByID = `
		SELECT` + taskColumns + `
		FROM tasks
		WHERE id = ? AND is_deleted = 0;`

	softDeleteTask = `
		UPDATE tasks SET
			is_deleted  = 1,
			updated_at  = ?,
			version     = version + 1,
			sync_status = 'pending'
		WHERE id = ? AND is_deleted = 0;`

	setTaskArchived = `
		UPDATE tasks SET
			is_archived = ?,
			updated_at  = ?,
			version     = version + 1,
			sync_status = 'pending'
		WHERE id = ? AND is_deleted = 0;`

	purgeAllTasks = `DELETE FROM tasks;`

	insertCategory = `
		INSERT INTO categories (id, name, color, icon, created_at, is_deleted)
		VALUES (?, ?, ?, ?, ?, 0);`

	getAllCategories = `
		SELECT id, name, color, icon, created_at
		FROM categories
		WHERE is_deleted = 0
		ORDER BY created_at ASC;`

	softDeleteCategory = `
		UPDATE categories SET is_deleted = 1
		WHERE id = ? AND is_deleted = 0;`

	insertCheckin = `
		INSERT INTO habit_checkins (id, task_id, checkin_date, completed, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?);`

	getCheckinsInRange = `
		SELECT id, task_id, checkin_date, completed, notes, created_at
		FROM habit_checkins
		WHERE task_id = ? AND checkin_date BETWEEN ? AND ?
		ORDER BY checkin_date DESC;`

	insertSyncLog = `
		INSERT INTO sync_logs (sync_type, sync_status, sync_time, error_message, items_synced)
		VALUES (?, ?, ?, ?, ?);`

	getRecentSyncLogs = `
		SELECT id, sync_type, sync_status, sync_time, error_message, items_synced
		FROM sync_logs
		ORDER BY id DESC
		LIMIT ?;`

	countTotalTasks     = `SELECT COUNT(*) FROM tasks WHERE is_deleted = 0;`
	countCompletedTasks = `SELECT COUNT(*) FROM tasks WHERE completed = 1 AND is_deleted = 0;`
	countArchivedTasks  = `SELECT COUNT(*) FROM tasks WHERE is_archived = 1 AND is_deleted = 0;`
	countHabits         = `SELECT COUNT(*) FROM tasks WHERE type = 'habit' AND is_deleted = 0;`
	countCategories     = `SELECT COUNT(*) FROM categories WHERE is_deleted = 0;`
)
