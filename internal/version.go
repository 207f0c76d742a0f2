package internal

// Version is the abbrevkit release version
const Version = "0.3.0"
