// Package config provides configuration types and loading for gzlaunch.
//
// Configuration is a TOML file, /etc/gzlaunch/config.toml by default:
//
//	[network]
//	port_from     = 10000
//	port_to       = 15000
//	probe_host    = "localhost"
//	probe_timeout = "500ms"
//	max_attempts  = 0      # 0 probes the whole range
//	reserve       = false  # hold the port until the simulator starts
//
//	[simulator]
//	worlds_dir     = "/usr/share/gym-gazebo/worlds"
//	server_command = "gzserver"
//	client_command = "gazebo"
//	plugins        = ["libgazebo_ros_factory.so", "libgazebo_ros_init.so"]
//	verbose        = true
//	node_runner    = ["ros2", "run"]
//
//	[robot]
//	description_package = "mara_description"
//	urdf                = "urdf/mara_robot_camera_top.urdf"
//	...
//
//	[history]
//	enabled = true
//	dir     = ""  # defaults to $XDG_STATE_HOME/gzlaunch
//
// Every field has a default (see Default), so a missing default config file
// is not an error. Load validates after decoding.
package config
