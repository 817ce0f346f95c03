package domain

// Role enumerates caller roles carried in session tokens.
type Role string

// RoleAdmin is the only role ever assigned.
const RoleAdmin Role = "admin"
