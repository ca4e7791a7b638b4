package mission

// BuiltIn returns the stock training catalog.
func BuiltIn() *Catalog {
	c, err := NewCatalog(builtInMissions(), builtInTimelines())
	if err != nil {
		panic("built-in catalog: " + err.Error())
	}
	return c
}

func builtInMissions() []Mission {
	return []Mission{
		{
			Key:             "clipboard_hijack",
			Title:           "Mission 1 - Clipboard Hijack",
			Difficulty:      "Easy",
			Description:     "Detect & stop an insider copying data via VNC clipboard sync.",
			AttackType:      "Phishing",
			TargetSystem:    "Cloud Server",
			AllowedTools:    []ToolID{ToolDisableClipboard, ToolBlockIP, ToolStartSnort, ToolPacketCapture},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 15, MaxDataLossFraction: 0.1},
			ThreatModel:     "Insider with valid credentials copying sensitive files via clipboard sharing enabled in VNC session.",
			Scope:           "VNC clipboard synchronization mechanism; does NOT cover social engineering or physical access attacks.",
		},
		{
			Key:             "scp_transfer",
			Title:           "Mission 2 - SCP File Transfer",
			Difficulty:      "Medium",
			Description:     "Identify and block unauthorized SCP file transfers during VNC session.",
			AttackType:      "DDoS",
			TargetSystem:    "Email Server",
			AllowedTools:    []ToolID{ToolBlockIP, ToolStartSnort, ToolPacketCapture, ToolEnableLogging},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 30, MaxDataLossFraction: 0.15},
			ThreatModel:     "External attacker with stolen credentials initiating SCP transfers to exfiltrate data.",
			Scope:           "Network-level SCP traffic detection; excludes encrypted tunnel attacks.",
		},
		{
			Key:             "dns_tunnel",
			Title:           "Mission 3 - DNS Tunneling",
			Difficulty:      "Hard",
			Description:     "Detect covert data exfiltration via DNS tunneling through VNC connection.",
			AttackType:      "Zero-Day Exploit",
			TargetSystem:    "Cloud Server",
			AllowedTools:    []ToolID{ToolStartSnort, ToolPacketCapture, ToolEnableLogging, ToolBlockIP},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 45, MaxDataLossFraction: 0.05},
			ThreatModel:     "Advanced attacker using DNS queries to tunnel data out through legitimate-looking traffic.",
			Scope:           "DNS query patterns and payload analysis; does NOT cover DNSSEC validation bypass.",
		},
		{
			Key:             "screenshot_exfil",
			Title:           "Mission 4 - Screenshot Exfiltration",
			Difficulty:      "Medium",
			Description:     "Stop automated screenshot capture and transmission via VNC.",
			AttackType:      "SQL Injection",
			TargetSystem:    "Email Server",
			AllowedTools:    []ToolID{ToolDisableClipboard, ToolPacketCapture, ToolEnableLogging},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 20, MaxDataLossFraction: 0.2},
			ThreatModel:     "Malicious script capturing screenshots at intervals and sending via network.",
			Scope:           "Screenshot capture detection and network transmission; excludes keylogger analysis.",
		},
		{
			Key:             "malware_download",
			Title:           "Mission 5 - Malware Download",
			Difficulty:      "Easy",
			Description:     "Detect and prevent malware download through compromised VNC session.",
			AttackType:      "Malware",
			TargetSystem:    "User Account",
			AllowedTools:    []ToolID{ToolBlockIP, ToolStartSnort, ToolEnableLogging},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 10, MaxDataLossFraction: 0},
			ThreatModel:     "User account compromise leading to malware download attempts.",
			Scope:           "File download detection and signature matching; does NOT cover zero-day malware.",
		},
		{
			Key:             "ransomware_attack",
			Title:           "Mission 6 - Ransomware Deployment",
			Difficulty:      "Hard",
			Description:     "Identify and stop ransomware encryption before critical data loss.",
			AttackType:      "Ransomware",
			TargetSystem:    "Email Server",
			AllowedTools:    []ToolID{ToolBlockIP, ToolStartSnort, ToolPacketCapture, ToolEnableLogging},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 30, MaxDataLossFraction: 0.05},
			ThreatModel:     "Ransomware payload delivered via email, attempting mass file encryption.",
			Scope:           "Encryption behavior detection and network C2 communication; excludes social engineering.",
		},
		{
			Key:             "brute_force_iot",
			Title:           "Mission 7 - IoT Brute Force",
			Difficulty:      "Medium",
			Description:     "Stop brute force attacks targeting IoT devices on the network.",
			AttackType:      "Brute Force",
			TargetSystem:    "IoT Device",
			AllowedTools:    []ToolID{ToolBlockIP, ToolEnableLogging, ToolStartSnort},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 25, MaxDataLossFraction: 0.1},
			ThreatModel:     "Automated brute force tool targeting weak IoT device credentials.",
			Scope:           "Login attempt rate detection; does NOT cover firmware vulnerabilities.",
		},
		{
			Key:             "cross_site_network",
			Title:           "Mission 8 - Cross-Site Network Attack",
			Difficulty:      "Medium",
			Description:     "Detect and mitigate cross-site scripting attempts via network layer.",
			AttackType:      "Cross-Site Scripting",
			TargetSystem:    "Network Systems",
			AllowedTools:    []ToolID{ToolStartSnort, ToolPacketCapture, ToolEnableLogging},
			SuccessCriteria: SuccessCriteria{DetectionTimeSeconds: 20, MaxDataLossFraction: 0.15},
			ThreatModel:     "Network-level XSS payloads attempting to compromise connected systems.",
			Scope:           "HTTP traffic analysis for XSS patterns; excludes DOM-based XSS.",
		},
	}
}

func builtInTimelines() map[string][]TimelineEvent {
	return map[string][]TimelineEvent{
		"clipboard_hijack": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session established: 10.0.0.5 -> 10.0.0.10"},
			{Timestamp: 3, Kind: KindInfo, Message: "User authentication successful (Employee credentials)"},
			{Timestamp: 5, Kind: KindSuspicious, Message: "Clipboard sync started (size: 2.1KB)", Details: "Base64-encoded pattern detected"},
			{Timestamp: 8, Kind: KindSuspicious, Message: "Large clipboard transfer detected (15.3KB total)", Details: "Possible sensitive data: financial_report_Q4.xlsx"},
			{Timestamp: 12, Kind: KindExfilAttempt, Message: "Simulated clipboard payload: [REDACTED - SENSITIVE DATA]", Details: "Data contains keywords: confidential, revenue, forecast"},
			{Timestamp: 18, Kind: KindInfo, Message: "Network traffic spike on port 5900 (VNC)"},
			{Timestamp: 25, Kind: KindSuspicious, Message: "Repeated clipboard operations detected (5 transfers in 20s)"},
			{Timestamp: 30, Kind: KindMissionEnd, Message: "Simulation time limit reached"},
		},
		"scp_transfer": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session established: 187.180.15.34 -> 10.0.0.20"},
			{Timestamp: 5, Kind: KindInfo, Message: "Admin user logged in via SSH tunnel"},
			{Timestamp: 10, Kind: KindSuspicious, Message: "SCP process initiated: large file transfer detected"},
			{Timestamp: 15, Kind: KindSuspicious, Message: "Outbound connection on port 22 to external IP 187.180.15.34"},
			{Timestamp: 22, Kind: KindExfilAttempt, Message: "SCP transfer in progress: database_backup.tar.gz (65.05MB)", Details: "Destination: external server Brazil region"},
			{Timestamp: 30, Kind: KindSuspicious, Message: "Encryption detected on outbound stream - possible data exfiltration"},
			{Timestamp: 40, Kind: KindExfilAttempt, Message: "Transfer 45% complete - 29.3MB transmitted"},
			{Timestamp: 55, Kind: KindMissionEnd, Message: "Simulation complete - assess your detection time"},
		},
		"dns_tunnel": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session active: 57.161.159.213 -> 10.0.0.15"},
			{Timestamp: 8, Kind: KindInfo, Message: "External user connection established (Germany location)"},
			{Timestamp: 15, Kind: KindSuspicious, Message: "Unusual DNS query pattern detected"},
			{Timestamp: 22, Kind: KindSuspicious, Message: "High-frequency DNS requests to unusual domains"},
			{Timestamp: 30, Kind: KindExfilAttempt, Message: "DNS tunneling detected: base64 data in subdomain queries", Details: "Query: ZGF0YS5leGZpbC5leGFtcGxlLmNvbQ=="},
			{Timestamp: 38, Kind: KindSuspicious, Message: "120 DNS queries in 23 seconds - abnormal behavior"},
			{Timestamp: 48, Kind: KindExfilAttempt, Message: "Estimated data exfiltration: 48.99KB via DNS tunnel"},
			{Timestamp: 60, Kind: KindMissionEnd, Message: "DNS tunneling simulation ended"},
		},
		"screenshot_exfil": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session: 207.108.15.4 -> 10.0.0.8"},
			{Timestamp: 5, Kind: KindInfo, Message: "Employee user active - Russia location"},
			{Timestamp: 10, Kind: KindSuspicious, Message: "Automated screenshot capture detected"},
			{Timestamp: 16, Kind: KindExfilAttempt, Message: "Screenshot data transmission: image/png (16.29KB)", Details: "Contains visible PII and credentials"},
			{Timestamp: 25, Kind: KindSuspicious, Message: "Second screenshot captured and transmitted"},
			{Timestamp: 35, Kind: KindExfilAttempt, Message: "Multiple screenshots sent to external server (total: 87.66KB)"},
			{Timestamp: 45, Kind: KindMissionEnd, Message: "Screenshot exfiltration test complete"},
		},
		"malware_download": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session: 205.34.80.163 -> 10.0.0.12"},
			{Timestamp: 3, Kind: KindInfo, Message: "Contractor user logged in (France)"},
			{Timestamp: 7, Kind: KindSuspicious, Message: "HTTP download initiated from suspicious domain"},
			{Timestamp: 10, Kind: KindExfilAttempt, Message: "Malware signature detected: trojan.generic.exe (78.29KB)", Details: "Hash: a3f2c1b..."},
			{Timestamp: 12, Kind: KindSuspicious, Message: "Executable attempting to modify system registry"},
			{Timestamp: 18, Kind: KindMissionEnd, Message: "Malware download simulation ended"},
		},
		"ransomware_attack": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session: 151.146.179.117 -> 10.0.0.18"},
			{Timestamp: 5, Kind: KindInfo, Message: "External user authenticated (UK)"},
			{Timestamp: 10, Kind: KindSuspicious, Message: "Mass file access pattern detected"},
			{Timestamp: 15, Kind: KindExfilAttempt, Message: "File encryption behavior detected - ransomware activity", Details: "40.04KB encrypted"},
			{Timestamp: 22, Kind: KindSuspicious, Message: "C2 communication attempt to external server"},
			{Timestamp: 30, Kind: KindExfilAttempt, Message: "Encryption spreading: 171 files affected"},
			{Timestamp: 40, Kind: KindMissionEnd, Message: "Ransomware simulation complete"},
		},
		"brute_force_iot": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session monitoring IoT network segment"},
			{Timestamp: 5, Kind: KindSuspicious, Message: "Multiple failed login attempts detected on IoT device"},
			{Timestamp: 10, Kind: KindSuspicious, Message: "Brute force pattern: 85 login attempts in 5 seconds"},
			{Timestamp: 15, Kind: KindExfilAttempt, Message: "IoT device credentials compromised - unauthorized access", Details: "Device: 227.165.40.175"},
			{Timestamp: 22, Kind: KindSuspicious, Message: "Lateral movement detected from compromised IoT device"},
			{Timestamp: 30, Kind: KindMissionEnd, Message: "IoT brute force simulation ended"},
		},
		"cross_site_network": {
			{Timestamp: 0, Kind: KindInfo, Message: "VNC session: 158.152.184.3 -> 10.0.0.25"},
			{Timestamp: 5, Kind: KindInfo, Message: "Contractor user - USA location"},
			{Timestamp: 10, Kind: KindSuspicious, Message: "XSS payload detected in HTTP traffic"},
			{Timestamp: 15, Kind: KindExfilAttempt, Message: "Cross-site scripting attempt: malicious script injection", Details: "Payload: <script>alert(document.cookie)</script>"},
			{Timestamp: 22, Kind: KindSuspicious, Message: "Multiple XSS attempts from same source"},
			{Timestamp: 28, Kind: KindMissionEnd, Message: "Cross-site attack simulation complete"},
		},
	}
}
