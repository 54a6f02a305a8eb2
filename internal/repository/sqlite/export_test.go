package sqlite

// Users returns a UserRepository outside of any transaction.
func (db *DB) Users() *UserRepository {
	return NewUserRepository(db.SqlDB)
}

// Tasks returns a TaskRepository outside of any transaction.
func (db *DB) Tasks() *TaskRepository {
	return NewTaskRepository(db.SqlDB)
}
