/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0.
 */

// Package storage persists book projects on disk: a human-readable JSON
// manifest (book content plus formatting settings) with transactional saves
// and timestamped backups, and a per-project embedded SQLite index used for
// chapter search and edit snapshots. The layout engine itself never touches
// storage; callers load a project, run the engine, and save results back.
package storage
