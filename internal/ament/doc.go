// Package ament locates installed ROS 2 packages.
//
// A package counts as installed under a prefix when the prefix carries a
// marker file in the ament resource index:
//
//	<prefix>/share/ament_index/resource_index/packages/<name>
//
// Prefixes come from AMENT_PREFIX_PATH and are searched in order, so an
// overlay workspace shadows the underlying distribution:
//
//	idx := ament.FromEnvironment(environ, system.DefaultFS())
//	prefix, err := idx.Prefix("mara_gazebo_plugins") // /ws/install/mara_gazebo_plugins
//	share, err := idx.Share("mara_description")      // <prefix>/share/mara_description
//	urdf, err := idx.Resolve("mara_description", "urdf/mara_robot_camera_top.urdf")
//
// Resolve joins with securejoin, so a relative path from configuration can
// never leave the package share directory.
package ament
