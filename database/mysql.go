package database

import (
	"database/sql"
	"log"

	"hobbyhub/config"

	_ "github.com/go-sql-driver/mysql"
)

var DB *sql.DB

func Connect() error {
	var err error
	DB, err = sql.Open("mysql", config.Cfg.MysqlDSN)
	if err != nil {
		return err
	}

	if err = DB.Ping(); err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(5)

	log.Println("Database connected successfully")
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}

func CreateTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            VARCHAR(36) PRIMARY KEY,
			username      VARCHAR(50) NOT NULL,
			email         VARCHAR(255) NOT NULL,
			first_name    VARCHAR(150) NOT NULL,
			last_name     VARCHAR(150) NOT NULL,
			password      VARCHAR(255) NOT NULL,
			date_of_birth DATE,
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_username (username),
			UNIQUE KEY uk_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			id          VARCHAR(36) PRIMARY KEY,
			user_id     VARCHAR(36) NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uk_profile_user (user_id),
			CONSTRAINT fk_profiles_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS hobbies (
			id          VARCHAR(36) PRIMARY KEY,
			name        VARCHAR(100) NOT NULL,
			created_by  VARCHAR(36),
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uk_hobby_name (name),
			INDEX idx_created_by (created_by),
			CONSTRAINT fk_hobbies_creator FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_hobbies (
			user_id     VARCHAR(36) NOT NULL,
			hobby_id    VARCHAR(36) NOT NULL,
			created_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, hobby_id),
			INDEX idx_hobby (hobby_id),
			CONSTRAINT fk_user_hobbies_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_user_hobbies_hobby FOREIGN KEY (hobby_id) REFERENCES hobbies(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS friend_requests (
			id            VARCHAR(36) PRIMARY KEY,
			from_user_id  VARCHAR(36) NOT NULL,
			to_user_id    VARCHAR(36) NOT NULL,
			status        ENUM('sent', 'accepted', 'rejected') DEFAULT 'sent',
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_from_user (from_user_id),
			INDEX idx_to_user (to_user_id),
			CONSTRAINT fk_requests_from FOREIGN KEY (from_user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_requests_to FOREIGN KEY (to_user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, table := range tables {
		if _, err := DB.Exec(table); err != nil {
			return err
		}
	}

	log.Println("Database tables created successfully")
	return nil
}
