package model

// NotAvailable is displayed for any field the providers could not supply
const NotAvailable = "N/A"
